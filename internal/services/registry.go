package services

import (
	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/events"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	CompanyService      CompanyService
	JobService          JobService
	ApplicationService  ApplicationService
	NotificationService NotificationService
	ProfileService      ProfileService
	UploadService       UploadService
}

// Dependencies - внешние зависимости, которые собирает app
type Dependencies struct {
	Tokens      *auth.TokenManager
	Mailer      *email.Dispatcher
	Notifier    Notifier
	Publisher   events.Publisher
	Storage     storage.Storage
	Upload      *UploadConfig
	FrontendURL string
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	companyRepo := repositories.NewCompanyRepository()
	jobRepo := repositories.NewJobRepository()
	appRepo := repositories.NewApplicationRepository()
	profileRepo := repositories.NewProfileRepository()
	notificationRepo := repositories.NewNotificationRepository()
	resetRepo := repositories.NewPasswordResetRepository()

	profileService := NewProfileService(profileRepo, userRepo)

	return &ServiceContainer{
		AuthService:    NewAuthService(userRepo, companyRepo, profileRepo, resetRepo, deps.Tokens, deps.Mailer, deps.FrontendURL),
		UserService:    NewUserService(userRepo, companyRepo, jobRepo, appRepo, profileRepo, notificationRepo, resetRepo),
		CompanyService: NewCompanyService(companyRepo, deps.Mailer, deps.Notifier, deps.Publisher),
		JobService:     NewJobService(jobRepo, companyRepo, appRepo),
		ApplicationService: NewApplicationService(
			appRepo, jobRepo, companyRepo, profileRepo, userRepo, notificationRepo,
			deps.Mailer, deps.Notifier, deps.Publisher,
		),
		NotificationService: NewNotificationService(notificationRepo),
		ProfileService:      profileService,
		UploadService:       NewUploadService(deps.Storage, profileService, companyRepo, deps.Upload),
	}
}
