package services

import (
	"context"
	"errors"
	"strings"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/events"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const EventCompanyStatus = "company_status"

type CompanyService interface {
	CreateCompany(db *gorm.DB, caller *auth.Caller, req *dto.CreateCompanyRequest) (*models.Company, error)
	GetMyCompany(db *gorm.DB, caller *auth.Caller) (*models.Company, error)
	UpdateMyCompany(db *gorm.DB, caller *auth.Caller, req *dto.UpdateCompanyRequest) (*models.Company, error)
	GetCompany(db *gorm.DB, caller *auth.Caller, companyID string) (*models.Company, error)
	ListCompanies(db *gorm.DB, caller *auth.Caller, query *dto.CompanyListQuery) ([]models.Company, error)
	ModerateCompany(ctx context.Context, db *gorm.DB, caller *auth.Caller, companyID string, req *dto.ModerateCompanyRequest) (*models.Company, error)
}

type CompanyServiceImpl struct {
	companyRepo repositories.CompanyRepository
	mailer      *email.Dispatcher
	notifier    Notifier
	publisher   events.Publisher
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	mailer *email.Dispatcher,
	notifier Notifier,
	publisher events.Publisher,
) CompanyService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CompanyServiceImpl{
		companyRepo: companyRepo,
		mailer:      mailer,
		notifier:    notifier,
		publisher:   publisher,
	}
}

func (s *CompanyServiceImpl) CreateCompany(db *gorm.DB, caller *auth.Caller, req *dto.CreateCompanyRequest) (*models.Company, error) {
	if err := auth.Authorize(caller, auth.EntityCompany, auth.OpCreate, auth.Subject{}); err != nil {
		return nil, err
	}

	company := &models.Company{
		UserID:      caller.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
		Logo:        req.Logo,
		Status:      models.CompanyStatusPending,
	}
	if err := s.companyRepo.Create(db, company); err != nil {
		return nil, handleRepoError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) GetMyCompany(db *gorm.DB, caller *auth.Caller) (*models.Company, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	company, err := s.companyRepo.FindByUserID(db, caller.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return company, nil
}

// UpdateMyCompany не синхронизирует companyName в уже созданных вакансиях
func (s *CompanyServiceImpl) UpdateMyCompany(db *gorm.DB, caller *auth.Caller, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.GetMyCompany(db, caller)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(caller, auth.EntityCompany, auth.OpUpdate, auth.Subject{OwnerUserID: company.UserID}); err != nil {
		return nil, err
	}

	var fields []string
	set := func(dst *string, v *string, column string) {
		if v != nil {
			*dst = *v
			fields = append(fields, column)
		}
	}
	set(&company.Name, req.Name, "name")
	set(&company.Description, req.Description, "description")
	set(&company.Website, req.Website, "website")
	set(&company.Location, req.Location, "location")
	set(&company.Logo, req.Logo, "logo")

	if len(fields) == 0 {
		return company, nil
	}
	if err := s.companyRepo.Update(db, company, fields...); err != nil {
		return nil, handleRepoError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) GetCompany(db *gorm.DB, caller *auth.Caller, companyID string) (*models.Company, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if err := auth.Authorize(caller, auth.EntityCompany, auth.OpRead, auth.Subject{OwnerUserID: company.UserID}); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyServiceImpl) ListCompanies(db *gorm.DB, caller *auth.Caller, query *dto.CompanyListQuery) ([]models.Company, error) {
	if err := auth.Authorize(caller, auth.EntityCompany, auth.OpRead, auth.Subject{}); err != nil {
		return nil, err
	}
	companies, err := s.companyRepo.List(db, models.CompanyStatus(query.Status))
	if err != nil {
		return nil, handleRepoError(err)
	}
	return companies, nil
}

// ModerateCompany - любой переход разрешен, терминального статуса нет.
// rejectionReason попадает только в письмо владельцу.
func (s *CompanyServiceImpl) ModerateCompany(ctx context.Context, db *gorm.DB, caller *auth.Caller, companyID string, req *dto.ModerateCompanyRequest) (*models.Company, error) {
	if err := auth.Authorize(caller, auth.EntityCompany, auth.OpModerate, auth.Subject{}); err != nil {
		return nil, err
	}
	if !req.Status.IsValid() {
		return nil, apperrors.NewValidationError("company", "Invalid company status")
	}

	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	previous := company.Status
	company.Status = req.Status
	if err := s.companyRepo.Update(db, company, "status"); err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(ctx, "Company moderated",
		"company_id", company.ID,
		"from", previous,
		"to", company.Status,
	)

	s.notifier.NotifyUser(company.UserID, EventCompanyStatus, map[string]string{
		"companyId": company.ID,
		"status":    string(company.Status),
	})
	publish(ctx, s.publisher, events.CompanyStatusChanged, map[string]string{
		"companyId": company.ID,
		"from":      string(previous),
		"to":        string(company.Status),
	})

	if company.User != nil {
		reason := ""
		if company.Status == models.CompanyStatusRejected {
			reason = req.RejectionReason
		}
		s.mailer.Send(ctx, company.User.Email, "Company status update", email.TemplateCompanyStatus, email.TemplateData{
			"Name":        company.User.Name,
			"CompanyName": company.Name,
			"Status":      string(company.Status),
			"Reason":      reason,
		})
	} else {
		logger.CtxWarn(ctx, "company owner not loaded, moderation email skipped", "company_id", company.ID)
	}

	return company, nil
}

// companyForCaller - профиль компании вызывающего или ошибка, если его нет
func companyForCaller(db *gorm.DB, repo repositories.CompanyRepository, caller *auth.Caller) (*models.Company, error) {
	company, err := repo.FindByUserID(db, caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NotFound("company", "Create a company profile first", err)
		}
		return nil, handleRepoError(err)
	}
	return company, nil
}
