package database

import (
	"fmt"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

// Models - все таблицы приложения, в порядке зависимостей
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Company{},
		&models.Profile{},
		&models.Job{},
		&models.Application{},
		&models.Notification{},
		&models.PasswordResetToken{},
	}
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("AutoMigrate completed", "tables", len(Models()))
	return nil
}
