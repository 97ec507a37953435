package dto

import "jobboard_backend/internal/models"

type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Website     string `json:"website" validate:"omitempty,url"`
	Location    string `json:"location" validate:"omitempty,max=255"`
	Logo        string `json:"logo" validate:"omitempty,max=512"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Logo        *string `json:"logo,omitempty" validate:"omitempty,max=512"`
}

// ModerateCompanyRequest - rejectionReason уходит только в письмо
type ModerateCompanyRequest struct {
	Status          models.CompanyStatus `json:"status" validate:"required,is-company-status"`
	RejectionReason string               `json:"rejectionReason" validate:"omitempty,max=1000"`
}

type CompanyListQuery struct {
	Status string `form:"status" validate:"omitempty,is-company-status"`
}
