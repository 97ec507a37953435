package services

import (
	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationService interface {
	GetUserNotifications(db *gorm.DB, caller *auth.Caller, query *dto.NotificationListQuery) (*dto.NotificationListResponse, error)
	GetUnreadCount(db *gorm.DB, caller *auth.Caller) (int64, error)
	// MarkNotifications помечает одно уведомление или все; возвращает свежий счетчик непрочитанных
	MarkNotifications(db *gorm.DB, caller *auth.Caller, req *dto.MarkNotificationsRequest) (int64, error)
	DeleteNotification(db *gorm.DB, caller *auth.Caller, notificationID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return dto.DefaultNotificationLimit
	}
	if limit > dto.MaxNotificationLimit {
		return dto.MaxNotificationLimit
	}
	return limit
}

// GetUserNotifications - счетчик считается отдельным запросом и не зависит от limit
func (s *NotificationServiceImpl) GetUserNotifications(db *gorm.DB, caller *auth.Caller, query *dto.NotificationListQuery) (*dto.NotificationListResponse, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}

	notifications, err := s.notificationRepo.ListByUser(db, caller.ID, query.Read, normalizeLimit(query.Limit))
	if err != nil {
		return nil, handleRepoError(err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	unread, err := s.notificationRepo.CountUnread(db, caller.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationServiceImpl) GetUnreadCount(db *gorm.DB, caller *auth.Caller) (int64, error) {
	if !caller.Authenticated() {
		return 0, apperrors.NewUnauthorizedError("User not authenticated")
	}
	count, err := s.notificationRepo.CountUnread(db, caller.ID)
	if err != nil {
		return 0, handleRepoError(err)
	}
	return count, nil
}

// MarkNotifications: чужой id - тихий no-op, не ошибка
func (s *NotificationServiceImpl) MarkNotifications(db *gorm.DB, caller *auth.Caller, req *dto.MarkNotificationsRequest) (int64, error) {
	if !caller.Authenticated() {
		return 0, apperrors.NewUnauthorizedError("User not authenticated")
	}

	switch {
	case req.MarkAllAsRead:
		if _, err := s.notificationRepo.MarkAllAsRead(db, caller.ID); err != nil {
			return 0, handleRepoError(err)
		}
	case req.ID != "":
		if _, err := s.notificationRepo.MarkAsRead(db, req.ID, caller.ID); err != nil {
			return 0, handleRepoError(err)
		}
	default:
		return 0, apperrors.NewValidationError("notification", "Either id or markAllAsRead is required")
	}

	return s.GetUnreadCount(db, caller)
}

func (s *NotificationServiceImpl) DeleteNotification(db *gorm.DB, caller *auth.Caller, notificationID string) error {
	if !caller.Authenticated() {
		return apperrors.NewUnauthorizedError("User not authenticated")
	}
	if _, err := s.notificationRepo.Delete(db, notificationID, caller.ID); err != nil {
		return handleRepoError(err)
	}
	return nil
}
