package workers

import (
	"context"
	"time"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

const tokenPurgeInterval = 6 * time.Hour

// TokenWorker удаляет просроченные токены сброса пароля
type TokenWorker struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTokenWorker(db *gorm.DB) *TokenWorker {
	return &TokenWorker{db: db, now: time.Now}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(tokenPurgeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Token worker stopped")
				return
			case <-ticker.C:
				if _, err := w.PurgeExpired(ctx); err != nil {
					logger.Error("Error purging reset tokens", "error", err.Error())
				}
			}
		}
	}()
}

func (w *TokenWorker) PurgeExpired(ctx context.Context) (int64, error) {
	result := w.db.WithContext(ctx).
		Where("expires_at < ?", w.now().UTC()).
		Delete(&models.PasswordResetToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		logger.Debug("Purged expired reset tokens", "count", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
