package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jobboard_backend/database"
	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/events"
	"jobboard_backend/internal/handlers"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/routes"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/storage"
	"jobboard_backend/internal/validator"
	"jobboard_backend/internal/workers"
	"jobboard_backend/pkg/apperrors"
	"jobboard_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		apperrors.SetDebug(true)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Connect(database.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Env:    cfg.Server.Env,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Если не удалось создать админа (проблемы с БД и т.д.) - не запускаем сервер
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher := events.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
	defer publisher.Close()

	ginRouter := SetupRouter(ctx, cfg, gormDB, publisher)

	// Фоновые задачи
	workers.NewJobWorker(gormDB).Start(ctx)
	workers.NewTokenWorker(gormDB).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    address,
		Handler: ginRouter,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

// SetupRouter собирает зависимости и возвращает готовый *gin.Engine; ctx ограничивает жизнь WebSocket-менеджера
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, publisher events.Publisher) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWTTTL())

	// 1. WebSocket-менеджер; он же доставляет уведомления сервисам
	wsManager := ws.NewWebSocketManager()
	go wsManager.Run(ctx)
	wsHandler := ws.NewWebSocketHandler(wsManager)

	// 2. Сервисы
	serviceContainer := services.NewServiceContainer(services.Dependencies{
		Tokens:      tokens,
		Mailer:      initializeMailer(cfg),
		Notifier:    wsManager,
		Publisher:   publisher,
		Storage:     storageInstance,
		Upload:      uploadConfig(cfg),
		FrontendURL: cfg.Email.FrontendURL,
	})

	// 3. Хэндлеры
	baseHandler := handlers.NewBaseHandler(validator.New(), tokens)
	appHandlers := handlers.NewAppHandlers(baseHandler, serviceContainer)

	// 4. Gin и маршруты
	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, tokens)

	return ginRouter
}

func initializeMailer(cfg *config.Config) *email.Dispatcher {
	provider := email.NewProviderFromConfig(email.Config{
		Provider:     cfg.Email.Provider,
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		ResendAPIKey: cfg.Email.ResendAPIKey,
		ResendURL:    cfg.Email.ResendBaseURL,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
	})
	if provider == nil {
		logger.Warn("Email provider is not configured, emails will be skipped", "provider", cfg.Email.Provider)
	} else {
		logger.Info("Email provider initialized", "provider", provider.Name())
	}

	templates := email.NewTemplateManager()
	if cfg.Email.TemplatesDir != "" {
		if err := templates.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			logger.Warn("Failed to load email templates, using builtin", "dir", cfg.Email.TemplatesDir, "error", err.Error())
		}
	}

	return email.NewDispatcher(provider, templates, cfg.Email.FromEmail, cfg.Email.FromName, cfg.EmailTimeout())
}

// uploadConfig применяет upload.max_size и upload.allowed_types к документам (resume, cv)
func uploadConfig(cfg *config.Config) *services.UploadConfig {
	uc := services.GetDefaultUploadConfig()
	for _, kind := range []string{services.UploadKindResume, services.UploadKindCV} {
		kc := uc.Kinds[kind]
		kc.MaxFileSize = cfg.Upload.MaxSize
		kc.AllowedTypes = cfg.Upload.AllowedTypes
	}
	if cfg.Upload.MaxSize > uc.MaxFileSize {
		uc.MaxFileSize = cfg.Upload.MaxSize
	}
	return uc
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin создает администратора из конфига; регистрация через API админа не создает
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.FirstAdminEmail))
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return nil
}
