package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationFilter struct {
	Status models.ApplicationStatus
	JobID  string
}

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	LockByID(tx *gorm.DB, id string) (*models.Application, error)
	ExistsForJobAndUser(db *gorm.DB, jobID, userID string) (bool, error)
	Update(db *gorm.DB, app *models.Application, fields ...string) error
	ListByUser(db *gorm.DB, userID string, status models.ApplicationStatus) ([]models.Application, error)
	ListByCompany(db *gorm.DB, companyID string, filter ApplicationFilter) ([]models.Application, error)
	ListAll(db *gorm.DB, filter ApplicationFilter) ([]models.Application, error)
	DeleteByUserID(db *gorm.DB, userID string) error
	DeleteByJobID(db *gorm.DB, jobID string) error
	DeleteByCompanyID(db *gorm.DB, companyID string) error
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

// Create полагается на уникальный индекс (job_id, user_id) - проверка ExistsForJobAndUser
// до вставки не закрывает гонку двух одновременных откликов.
func (r *applicationRepository) Create(db *gorm.DB, app *models.Application) error {
	if err := db.Create(app).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	err := withRetry("applications.find_by_id", func() error {
		return db.Preload("Job").First(&app, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// LockByID читает заявку под SELECT ... FOR UPDATE; вызывать только внутри транзакции.
// SQLite не понимает FOR UPDATE, gorm для него клаузу опускает.
func (r *applicationRepository) LockByID(tx *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Job").
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ExistsForJobAndUser(db *gorm.DB, jobID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepository) Update(db *gorm.DB, app *models.Application, fields ...string) error {
	return db.Model(app).Select(fields).Updates(app).Error
}

func (r *applicationRepository) ListByUser(db *gorm.DB, userID string, status models.ApplicationStatus) ([]models.Application, error) {
	var apps []models.Application
	query := db.Preload("Job").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListByCompany(db *gorm.DB, companyID string, filter ApplicationFilter) ([]models.Application, error) {
	var apps []models.Application
	query := db.Preload("Job").
		Where("job_id IN (?)", db.Model(&models.Job{}).Select("id").Where("company_id = ?", companyID))
	query = applyApplicationFilter(query, filter)
	err := query.Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListAll(db *gorm.DB, filter ApplicationFilter) ([]models.Application, error) {
	var apps []models.Application
	query := applyApplicationFilter(db.Preload("Job"), filter)
	err := query.Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Application{}).Error
}

func (r *applicationRepository) DeleteByJobID(db *gorm.DB, jobID string) error {
	return db.Where("job_id = ?", jobID).Delete(&models.Application{}).Error
}

func applyApplicationFilter(query *gorm.DB, filter ApplicationFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.JobID != "" {
		query = query.Where("job_id = ?", filter.JobID)
	}
	return query
}

// DeleteByCompanyID удаляет заявки на все вакансии компании
func (r *applicationRepository) DeleteByCompanyID(db *gorm.DB, companyID string) error {
	return db.Where("job_id IN (?)", db.Model(&models.Job{}).Select("id").Where("company_id = ?", companyID)).
		Delete(&models.Application{}).Error
}
