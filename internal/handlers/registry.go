package handlers

import "jobboard_backend/internal/services"

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	ProfileHandler      *ProfileHandler
	CompanyHandler      *CompanyHandler
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	NotificationHandler *NotificationHandler
	UploadHandler       *UploadHandler
}

func NewAppHandlers(base *BaseHandler, sc *services.ServiceContainer) *AppHandlers {
	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.AuthService),
		UserHandler:         NewUserHandler(base, sc.UserService),
		ProfileHandler:      NewProfileHandler(base, sc.ProfileService, sc.UploadService),
		CompanyHandler:      NewCompanyHandler(base, sc.CompanyService, sc.JobService),
		JobHandler:          NewJobHandler(base, sc.JobService),
		ApplicationHandler:  NewApplicationHandler(base, sc.ApplicationService),
		NotificationHandler: NewNotificationHandler(base, sc.NotificationService),
		UploadHandler:       NewUploadHandler(base, sc.UploadService),
	}
}
