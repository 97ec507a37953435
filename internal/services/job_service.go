package services

import (
	"context"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobService interface {
	ListJobs(db *gorm.DB, query *dto.JobListQuery, page, pageSize int) (*dto.PaginatedResponse, error)
	GetJob(db *gorm.DB, caller *auth.Caller, jobID string) (*models.Job, error)
	CreateJob(ctx context.Context, db *gorm.DB, caller *auth.Caller, req *dto.CreateJobRequest) (*models.Job, error)
	UpdateJob(db *gorm.DB, caller *auth.Caller, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	UpdateJobStatus(ctx context.Context, db *gorm.DB, caller *auth.Caller, jobID string, req *dto.UpdateJobStatusRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, db *gorm.DB, caller *auth.Caller, jobID string) error
	ListCompanyJobs(db *gorm.DB, caller *auth.Caller, status models.JobStatus, page, pageSize int) (*dto.PaginatedResponse, error)
}

type JobServiceImpl struct {
	jobRepo     repositories.JobRepository
	companyRepo repositories.CompanyRepository
	appRepo     repositories.ApplicationRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	appRepo repositories.ApplicationRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		appRepo:     appRepo,
	}
}

// ListJobs - публичный каталог, только active
func (s *JobServiceImpl) ListJobs(db *gorm.DB, query *dto.JobListQuery, page, pageSize int) (*dto.PaginatedResponse, error) {
	jobs, total, err := s.jobRepo.List(db, repositories.JobFilter{
		Status:    models.JobStatusActive,
		CompanyID: query.Company,
		Query:     strings.TrimSpace(query.Query),
		Location:  strings.TrimSpace(query.Location),
		Type:      query.Type,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return dto.NewPaginatedResponse(jobs, total, page, pageSize), nil
}

// GetJob: неактивные вакансии видят только админ и владелец, остальным 404
func (s *JobServiceImpl) GetJob(db *gorm.DB, caller *auth.Caller, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if job.Status == models.JobStatusActive {
		return job, nil
	}

	if caller.Authenticated() {
		if caller.Role == models.UserRoleAdmin {
			return job, nil
		}
		company, err := callerCompany(db, s.companyRepo, caller)
		if err != nil {
			return nil, err
		}
		if company != nil && company.ID == job.CompanyID {
			return job, nil
		}
	}
	return nil, apperrors.NotFound("job", "Job not found", repositories.ErrJobNotFound)
}

func (s *JobServiceImpl) CreateJob(ctx context.Context, db *gorm.DB, caller *auth.Caller, req *dto.CreateJobRequest) (*models.Job, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	company, err := callerCompany(db, s.companyRepo, caller)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(caller, auth.EntityJob, auth.OpCreate, auth.Subject{CallerCompany: company}); err != nil {
		return nil, err
	}

	job := &models.Job{
		CompanyID:           company.ID,
		CompanyName:         company.Name,
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		Location:            req.Location,
		Type:                req.Type,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      strings.ToUpper(req.SalaryCurrency),
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		Status:              models.JobStatusPending,
		ApplicationDeadline: req.ApplicationDeadline,
	}
	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(ctx, "Job created", "job_id", job.ID, "company_id", company.ID)
	return job, nil
}

func (s *JobServiceImpl) UpdateJob(db *gorm.DB, caller *auth.Caller, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.loadAuthorized(db, caller, jobID, auth.OpUpdate)
	if err != nil {
		return nil, err
	}

	var fields []string
	set := func(dst *string, v *string, column string) {
		if v != nil {
			*dst = *v
			fields = append(fields, column)
		}
	}
	set(&job.Title, req.Title, "title")
	set(&job.Description, req.Description, "description")
	set(&job.Location, req.Location, "location")
	set(&job.Type, req.Type, "type")
	set(&job.SalaryCurrency, req.SalaryCurrency, "salary_currency")
	set(&job.Requirements, req.Requirements, "requirements")
	set(&job.Responsibilities, req.Responsibilities, "responsibilities")
	if req.SalaryMin != nil {
		job.SalaryMin = *req.SalaryMin
		fields = append(fields, "salary_min")
	}
	if req.SalaryMax != nil {
		job.SalaryMax = *req.SalaryMax
		fields = append(fields, "salary_max")
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = req.ApplicationDeadline
		fields = append(fields, "application_deadline")
	}

	if job.SalaryMax > 0 && job.SalaryMax < job.SalaryMin {
		return nil, apperrors.NewValidationError("job", "salaryMax must be greater than or equal to salaryMin")
	}
	if len(fields) == 0 {
		return job, nil
	}
	if err := s.jobRepo.Update(db, job, fields...); err != nil {
		return nil, handleRepoError(err)
	}
	return job, nil
}

// UpdateJobStatus: админ модерирует свободно, компания-владелец может только закрыть вакансию
func (s *JobServiceImpl) UpdateJobStatus(ctx context.Context, db *gorm.DB, caller *auth.Caller, jobID string, req *dto.UpdateJobStatusRequest) (*models.Job, error) {
	if !req.Status.IsValid() {
		return nil, apperrors.ErrInvalidStatus("job", "Invalid job status")
	}

	op := auth.OpModerate
	if caller != nil && caller.Role == models.UserRoleCompany {
		if req.Status != models.JobStatusClosed {
			return nil, apperrors.NewForbiddenError("Companies can only close their jobs")
		}
		op = auth.OpUpdate
	}

	job, err := s.loadAuthorized(db, caller, jobID, op)
	if err != nil {
		return nil, err
	}
	if job.Status == req.Status {
		return job, nil
	}

	previous := job.Status
	job.Status = req.Status
	if err := s.jobRepo.Update(db, job, "status"); err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(ctx, "Job status changed", "job_id", job.ID, "from", previous, "to", job.Status)
	return job, nil
}

// DeleteJob удаляет вакансию вместе с заявками на нее
func (s *JobServiceImpl) DeleteJob(ctx context.Context, db *gorm.DB, caller *auth.Caller, jobID string) error {
	job, err := s.loadAuthorized(db, caller, jobID, auth.OpDelete)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.appRepo.DeleteByJobID(tx, job.ID); err != nil {
			return err
		}
		return s.jobRepo.Delete(tx, job.ID)
	})
	if err != nil {
		return handleRepoError(err)
	}

	logger.CtxInfo(ctx, "Job deleted", "job_id", job.ID)
	return nil
}

// ListCompanyJobs - все вакансии компании вызывающего в любом статусе
func (s *JobServiceImpl) ListCompanyJobs(db *gorm.DB, caller *auth.Caller, status models.JobStatus, page, pageSize int) (*dto.PaginatedResponse, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	if caller.Role != models.UserRoleCompany {
		return nil, apperrors.NewForbiddenError("Only companies can list their jobs")
	}
	company, err := companyForCaller(db, s.companyRepo, caller)
	if err != nil {
		return nil, err
	}

	jobs, total, err := s.jobRepo.List(db, repositories.JobFilter{
		Status:    status,
		CompanyID: company.ID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return dto.NewPaginatedResponse(jobs, total, page, pageSize), nil
}

func (s *JobServiceImpl) loadAuthorized(db *gorm.DB, caller *auth.Caller, jobID string, op auth.Operation) (*models.Job, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	company, err := callerCompany(db, s.companyRepo, caller)
	if err != nil {
		return nil, err
	}
	subject := auth.Subject{CompanyID: job.CompanyID, CallerCompany: company}
	if err := auth.Authorize(caller, auth.EntityJob, op, subject); err != nil {
		return nil, err
	}
	return job, nil
}
