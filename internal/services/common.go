package services

import (
	"context"
	"errors"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/events"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Notifier доставляет событие открытым соединениям пользователя (ws.WebSocketManager)
type Notifier interface {
	NotifyUser(userID, eventType string, payload any)
}

type nopNotifier struct{}

func (nopNotifier) NotifyUser(string, string, any) {}

// now подменяется в тестах
var now = func() time.Time { return time.Now().UTC() }

// handleRepoError переводит ошибки репозиториев в AppError
func handleRepoError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.NotFound("application", "Application not found", err)
	case errors.Is(err, repositories.ErrJobNotFound):
		return apperrors.NotFound("job", "Job not found", err)
	case errors.Is(err, repositories.ErrCompanyNotFound):
		return apperrors.NotFound("company", "Company not found", err)
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.NotFound("user", "User not found", err)
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.NotFound("profile", "Profile not found", err)
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return apperrors.NotFound("notification", "Notification not found", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound(err)
	case errors.Is(err, repositories.ErrDuplicateApplication):
		return apperrors.ErrAlreadyApplied.WithError(err)
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists.WithError(err)
	case errors.Is(err, repositories.ErrCompanyAlreadyExists):
		return apperrors.ErrCompanyAlreadyExists.WithError(err)
	case repositories.IsTransient(err):
		return apperrors.ErrStorageUnavailable(err)
	}
	return apperrors.InternalError(err)
}

// callerCompany загружает профиль компании вызывающего; для других ролей nil
func callerCompany(db *gorm.DB, repo repositories.CompanyRepository, caller *auth.Caller) (*models.Company, error) {
	if caller == nil || caller.Role != models.UserRoleCompany {
		return nil, nil
	}
	company, err := repo.FindByUserID(db, caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, nil
		}
		return nil, handleRepoError(err)
	}
	return company, nil
}

// publish - события после коммита, ошибки только в лог
func publish(ctx context.Context, publisher events.Publisher, eventType string, data any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, eventType, data); err != nil {
		logger.CtxWarn(ctx, "event publish failed", "event", eventType, "error", err.Error())
	}
}
