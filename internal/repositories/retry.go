package repositories

import (
	"time"

	"jobboard_backend/internal/logger"
)

// RetryDelay - фиксированная пауза перед единственным повтором
var RetryDelay = 300 * time.Millisecond

// withRetry повторяет операцию один раз, только если первая попытка упала на транзиентной ошибке.
// Используется для чтения одной сущности, списка вакансий и создания вакансии.
func withRetry(operation string, op func() error) error {
	err := op()
	if err == nil || !IsTransient(err) {
		return err
	}

	logger.Warn("transient storage error, retrying once",
		"operation", operation,
		"error", err.Error(),
		"delay_ms", RetryDelay.Milliseconds(),
	)
	time.Sleep(RetryDelay)
	return op()
}
