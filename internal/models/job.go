package models

import "time"

type Job struct {
	BaseModel
	CompanyID string `gorm:"type:varchar(36);not null;index" json:"companyId"`
	// CompanyName копируется при создании и не синхронизируется при переименовании компании
	CompanyName         string     `gorm:"size:255" json:"companyName"`
	Title               string     `gorm:"size:255;not null" json:"title"`
	Description         string     `gorm:"type:text" json:"description"`
	Location            string     `gorm:"size:255;index" json:"location,omitempty"`
	Type                string     `gorm:"size:30" json:"type,omitempty"`
	SalaryMin           int64      `json:"salaryMin,omitempty"`
	SalaryMax           int64      `json:"salaryMax,omitempty"`
	SalaryCurrency      string     `gorm:"size:3" json:"salaryCurrency,omitempty"`
	Requirements        string     `gorm:"type:text" json:"requirements,omitempty"`
	Responsibilities    string     `gorm:"type:text" json:"responsibilities,omitempty"`
	Status              JobStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// AcceptsApplications - только active и до дедлайна (если он задан)
func (j *Job) AcceptsApplications(now time.Time) bool {
	if j.Status != JobStatusActive {
		return false
	}
	return j.ApplicationDeadline == nil || now.Before(*j.ApplicationDeadline)
}
