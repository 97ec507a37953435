package repositories

import (
	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	ListByUser(db *gorm.DB, userID string, read *bool, limit int) ([]models.Notification, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
	MarkAsRead(db *gorm.DB, id, userID string) (int64, error)
	MarkAllAsRead(db *gorm.DB, userID string) (int64, error)
	Delete(db *gorm.DB, id, userID string) (int64, error)
	DeleteByUserID(db *gorm.DB, userID string) error
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

// ListByUser - новые первыми; read == nil означает без фильтра
func (r *notificationRepository) ListByUser(db *gorm.DB, userID string, read *bool, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	query := db.Where("user_id = ?", userID)
	if read != nil {
		query = query.Where("is_read = ?", *read)
	}
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead ограничен user_id: чужой id просто ничего не обновит
func (r *notificationRepository) MarkAsRead(db *gorm.DB, id, userID string) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) Delete(db *gorm.DB, id, userID string) (int64, error) {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}
