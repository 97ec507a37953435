package models

import (
	"time"

	"gorm.io/datatypes"
)

// StatusChange - запись в журнале статусов заявки
type StatusChange struct {
	Status ApplicationStatus `json:"status"`
	Date   time.Time         `json:"date"`
	Notes  string            `json:"notes,omitempty"`
}

type Application struct {
	BaseModel
	JobID       string `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_job_user" json:"jobId"`
	UserID      string `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_job_user;index" json:"userId"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Email       string `gorm:"size:255;not null" json:"email"`
	Resume      string `gorm:"size:512" json:"resume,omitempty"`
	CV          string `gorm:"column:cv;size:512" json:"cv,omitempty"`
	CoverLetter string `gorm:"type:text" json:"coverLetter,omitempty"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`

	Status ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// StatusHistory только дополняется, порядок = порядок коммитов
	StatusHistory    datatypes.JSONSlice[StatusChange] `json:"statusHistory"`
	NotificationRead bool                              `gorm:"not null;default:false" json:"notificationRead"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// AppendStatus добавляет запись в историю и сбрасывает флаг прочтения
func (a *Application) AppendStatus(status ApplicationStatus, notes string, at time.Time) {
	a.StatusHistory = append(a.StatusHistory, StatusChange{Status: status, Date: at, Notes: notes})
	a.Status = status
	a.NotificationRead = false
}
