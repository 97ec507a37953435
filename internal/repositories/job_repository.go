package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

type JobFilter struct {
	Status    models.JobStatus
	CompanyID string
	Query     string
	Location  string
	Type      string
	Page      int
	PageSize  int
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	List(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error)
	Update(db *gorm.DB, job *models.Job, fields ...string) error
	Delete(db *gorm.DB, id string) error
	DeleteByCompanyID(db *gorm.DB, companyID string) error
}

type jobRepository struct{}

func NewJobRepository() JobRepository {
	return &jobRepository{}
}

// Create повторяется один раз на транзиентной ошибке; id генерируется до вставки,
// так что повтор после фактически успешной вставки упрется в первичный ключ.
func (r *jobRepository) Create(db *gorm.DB, job *models.Job) error {
	return withRetry("jobs.create", func() error {
		return db.Create(job).Error
	})
}

func (r *jobRepository) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := withRetry("jobs.find_by_id", func() error {
		return db.First(&job, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) List(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error) {
	var jobs []models.Job
	var total int64

	err := withRetry("jobs.list", func() error {
		jobs = nil
		query := db.Model(&models.Job{})
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.CompanyID != "" {
			query = query.Where("company_id = ?", filter.CompanyID)
		}
		if filter.Query != "" {
			like := "%" + filter.Query + "%"
			query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(company_name) LIKE LOWER(?)", like, like)
		}
		if filter.Location != "" {
			query = query.Where("LOWER(location) LIKE LOWER(?)", "%"+filter.Location+"%")
		}
		if filter.Type != "" {
			query = query.Where("type = ?", filter.Type)
		}

		if err := query.Count(&total).Error; err != nil {
			return err
		}
		return query.Order("created_at DESC").
			Limit(filter.PageSize).
			Offset((filter.Page - 1) * filter.PageSize).
			Find(&jobs).Error
	})
	return jobs, total, err
}

func (r *jobRepository) Update(db *gorm.DB, job *models.Job, fields ...string) error {
	return db.Model(job).Select(fields).Updates(job).Error
}

func (r *jobRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) DeleteByCompanyID(db *gorm.DB, companyID string) error {
	return db.Where("company_id = ?", companyID).Delete(&models.Job{}).Error
}
