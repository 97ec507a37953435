package dto

import "jobboard_backend/internal/models"

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

type NotificationListQuery struct {
	Read  *bool `form:"read"`
	Limit int   `form:"limit" validate:"omitempty,min=0"`
}

// MarkNotificationsRequest - либо id одного уведомления, либо markAllAsRead
type MarkNotificationsRequest struct {
	ID            string `json:"id"`
	MarkAllAsRead bool   `json:"markAllAsRead"`
}

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}
