package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(db *gorm.DB, company *models.Company) error
	FindByID(db *gorm.DB, id string) (*models.Company, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Company, error)
	List(db *gorm.DB, status models.CompanyStatus) ([]models.Company, error)
	Update(db *gorm.DB, company *models.Company, fields ...string) error
	DeleteByUserID(db *gorm.DB, userID string) error
}

type companyRepository struct{}

func NewCompanyRepository() CompanyRepository {
	return &companyRepository{}
}

func (r *companyRepository) Create(db *gorm.DB, company *models.Company) error {
	if err := db.Create(company).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrCompanyAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID подгружает владельца - он нужен для писем модерации
func (r *companyRepository) FindByID(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	err := withRetry("companies.find_by_id", func() error {
		return db.Preload("User").First(&company, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByUserID(db *gorm.DB, userID string) (*models.Company, error) {
	var company models.Company
	if err := db.Where("user_id = ?", userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(db *gorm.DB, status models.CompanyStatus) ([]models.Company, error) {
	var companies []models.Company
	query := db.Model(&models.Company{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&companies).Error
	return companies, err
}

func (r *companyRepository) Update(db *gorm.DB, company *models.Company, fields ...string) error {
	return db.Model(company).Select(fields).Updates(company).Error
}

func (r *companyRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Company{}).Error
}
