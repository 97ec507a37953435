package models

// Company - профиль работодателя, принадлежит ровно одному пользователю
type Company struct {
	BaseModel
	UserID      string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Website     string        `gorm:"size:255" json:"website,omitempty"`
	Location    string        `gorm:"size:255" json:"location,omitempty"`
	Logo        string        `gorm:"size:512" json:"logo,omitempty"`
	Status      CompanyStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (c *Company) IsApproved() bool {
	return c != nil && c.Status == CompanyStatusApproved
}
