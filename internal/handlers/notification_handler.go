package handlers

import (
	"net/http"

	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(h.RequireAuth())
	{
		notifications.GET("", h.GetUserNotifications)
		notifications.PATCH("", h.MarkNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.DELETE("/:notificationId", h.DeleteNotification)
	}
}

// GetUserNotifications godoc
// @Summary Лента уведомлений
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param read query bool false "Фильтр по прочитанности"
// @Param limit query int false "Лимит (по умолчанию 20)"
// @Success 200 {object} dto.NotificationListResponse
// @Router /notifications [get]
func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var query dto.NotificationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.notificationService.GetUserNotifications(h.GetDB(c), caller, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MarkNotifications godoc
// @Summary Пометить прочитанным одно или все уведомления
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkNotificationsRequest true "id или markAllAsRead"
// @Success 200 {object} dto.UnreadCountResponse
// @Router /notifications [patch]
func (h *NotificationHandler) MarkNotifications(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.MarkNotificationsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	unread, err := h.notificationService.MarkNotifications(h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: unread})
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(h.GetDB(c), caller, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
