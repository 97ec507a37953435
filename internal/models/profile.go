package models

import "gorm.io/datatypes"

// Profile - портфолио соискателя; имя и email отсюда копируются в заявки
type Profile struct {
	BaseModel
	UserID   string                      `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	Name     string                      `gorm:"size:255" json:"name"`
	Email    string                      `gorm:"size:255" json:"email"`
	Phone    string                      `gorm:"size:50" json:"phone,omitempty"`
	Headline string                      `gorm:"size:255" json:"headline,omitempty"`
	Bio      string                      `gorm:"type:text" json:"bio,omitempty"`
	Location string                      `gorm:"size:255" json:"location,omitempty"`
	Skills   datatypes.JSONSlice[string] `json:"skills"`
	Resume   string                      `gorm:"size:512" json:"resume,omitempty"`
}
