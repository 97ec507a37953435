package models

import "time"

// PasswordResetToken - одноразовый, один на пользователя
type PasswordResetToken struct {
	BaseModel
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex"`
	Token     string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
