package models

const (
	NotificationTypeApplicationStatus = "application_status"
	NotificationTypeApplicationNew    = "application_new"
)

type Notification struct {
	BaseModel
	UserID    string  `gorm:"type:varchar(36);not null;index" json:"userId"`
	Type      string  `gorm:"size:50;not null" json:"type"`
	Title     string  `gorm:"size:255;not null" json:"title"`
	Message   string  `gorm:"type:text" json:"message"`
	Read      bool    `gorm:"column:is_read;not null;default:false;index" json:"read"`
	RelatedID *string `gorm:"type:varchar(36)" json:"relatedId,omitempty"`
}
