package dto

import "jobboard_backend/internal/models"

type CreateApplicationRequest struct {
	JobID       string `json:"jobId" validate:"required"`
	CV          string `json:"cv" validate:"omitempty,max=512"`
	CoverLetter string `json:"coverLetter" validate:"omitempty,max=5000"`
}

// UpdateApplicationRequest - частичное обновление; какие поля реально применяются, решает роль вызывающего
type UpdateApplicationRequest struct {
	Name             *string                   `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email            *string                   `json:"email,omitempty" validate:"omitempty,email"`
	Resume           *string                   `json:"resume,omitempty" validate:"omitempty,max=512"`
	CV               *string                   `json:"cv,omitempty" validate:"omitempty,max=512"`
	CoverLetter      *string                   `json:"coverLetter,omitempty" validate:"omitempty,max=5000"`
	Notes            *string                   `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Status           *models.ApplicationStatus `json:"status,omitempty"`
	NotificationRead *bool                     `json:"notificationRead,omitempty"`
}

// ForRole оставляет только поля, которые роль вправе менять; остальное отбрасывается до валидации
func (r *UpdateApplicationRequest) ForRole(role models.UserRole) *UpdateApplicationRequest {
	switch role {
	case models.UserRoleCompany:
		return &UpdateApplicationRequest{Status: r.Status, Notes: r.Notes}
	case models.UserRoleJobseeker:
		return &UpdateApplicationRequest{NotificationRead: r.NotificationRead}
	case models.UserRoleAdmin:
		scoped := *r
		return &scoped
	}
	return &UpdateApplicationRequest{}
}

type ApplicationListQuery struct {
	Status string `form:"status" validate:"omitempty,is-application-status"`
	JobID  string `form:"jobId"`
}
