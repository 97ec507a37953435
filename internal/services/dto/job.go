package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

type CreateJobRequest struct {
	Title               string     `json:"title" validate:"required,min=2,max=255"`
	Description         string     `json:"description" validate:"required"`
	Location            string     `json:"location" validate:"omitempty,max=255"`
	Type                string     `json:"type" validate:"omitempty,oneof=full-time part-time contract internship remote"`
	SalaryMin           int64      `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax           int64      `json:"salaryMax" validate:"omitempty,gtefield=SalaryMin"`
	SalaryCurrency      string     `json:"salaryCurrency" validate:"omitempty,len=3"`
	Requirements        string     `json:"requirements" validate:"omitempty,max=10000"`
	Responsibilities    string     `json:"responsibilities" validate:"omitempty,max=10000"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
}

type UpdateJobRequest struct {
	Title               *string    `json:"title,omitempty" validate:"omitempty,min=2,max=255"`
	Description         *string    `json:"description,omitempty"`
	Location            *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	Type                *string    `json:"type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship remote"`
	SalaryMin           *int64     `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
	SalaryMax           *int64     `json:"salaryMax,omitempty" validate:"omitempty,min=0"`
	SalaryCurrency      *string    `json:"salaryCurrency,omitempty" validate:"omitempty,len=3"`
	Requirements        *string    `json:"requirements,omitempty" validate:"omitempty,max=10000"`
	Responsibilities    *string    `json:"responsibilities,omitempty" validate:"omitempty,max=10000"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

type UpdateJobStatusRequest struct {
	Status models.JobStatus `json:"status" validate:"required,is-job-status"`
}

type JobListQuery struct {
	Query    string `form:"q"`
	Location string `form:"location"`
	Type     string `form:"type"`
	Company  string `form:"companyId"`
}
