package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PasswordResetRepository interface {
	Upsert(db *gorm.DB, token *models.PasswordResetToken) error
	FindByToken(db *gorm.DB, token string) (*models.PasswordResetToken, error)
	DeleteByUserID(db *gorm.DB, userID string) error
}

type passwordResetRepository struct{}

func NewPasswordResetRepository() PasswordResetRepository {
	return &passwordResetRepository{}
}

// Upsert держит один активный токен на пользователя: новый запрос заменяет старый
func (r *passwordResetRepository) Upsert(db *gorm.DB, token *models.PasswordResetToken) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "updated_at"}),
	}).Create(token).Error
}

func (r *passwordResetRepository) FindByToken(db *gorm.DB, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := db.Where("token = ?", token).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *passwordResetRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.PasswordResetToken{}).Error
}
