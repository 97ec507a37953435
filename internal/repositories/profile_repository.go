package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	Save(db *gorm.DB, profile *models.Profile) error
	DeleteByUserID(db *gorm.DB, userID string) error
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Save создает профиль, если у него еще нет id, иначе перезаписывает все поля
func (r *profileRepository) Save(db *gorm.DB, profile *models.Profile) error {
	if profile.ID == "" {
		return db.Create(profile).Error
	}
	return db.Save(profile).Error
}

func (r *profileRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Profile{}).Error
}
