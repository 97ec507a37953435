package workers

import (
	"context"
	"time"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

const jobCloseInterval = time.Hour

type JobWorker struct {
	db  *gorm.DB
	now func() time.Time
}

func NewJobWorker(db *gorm.DB) *JobWorker {
	return &JobWorker{db: db, now: time.Now}
}

// Start запускает автозакрытие вакансий с прошедшим applicationDeadline
func (w *JobWorker) Start(ctx context.Context) {
	go w.autoCloseJobs(ctx)
}

func (w *JobWorker) autoCloseJobs(ctx context.Context) {
	ticker := time.NewTicker(jobCloseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Job worker stopped")
			return
		case <-ticker.C:
			if _, err := w.CloseExpired(ctx); err != nil {
				logger.Error("Error auto-closing jobs", "error", err.Error())
			}
		}
	}
}

// CloseExpired закрывает активные вакансии, у которых истек срок приема откликов
func (w *JobWorker) CloseExpired(ctx context.Context) (int64, error) {
	now := w.now().UTC()
	result := w.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("status = ? AND application_deadline IS NOT NULL AND application_deadline < ?", models.JobStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.JobStatusClosed,
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		logger.Info("Auto-closed expired jobs", "count", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
