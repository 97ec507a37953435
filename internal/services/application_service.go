package services

import (
	"context"
	"errors"
	"fmt"
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

const EventNotification = "notification"

var statusMessages = map[models.ApplicationStatus]string{
	models.ApplicationStatusReviewed:    "Your application has been reviewed",
	models.ApplicationStatusShortlisted: "Congratulations! You've been shortlisted",
	models.ApplicationStatusInterview:   "Congratulations! You've been selected for an interview",
	models.ApplicationStatusHired:       "Congratulations! You've been hired",
	models.ApplicationStatusRejected:    "Thank you for your interest, but your application was not selected",
}

// StatusMessage - заголовок уведомления и текст письма для статуса
func StatusMessage(status models.ApplicationStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Your application status has been updated to %s", status)
}

type ApplicationService interface {
	SubmitApplication(ctx context.Context, db *gorm.DB, caller *auth.Caller, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetApplication(db *gorm.DB, caller *auth.Caller, applicationID string) (*models.Application, error)
	UpdateApplication(ctx context.Context, db *gorm.DB, caller *auth.Caller, applicationID string, req *dto.UpdateApplicationRequest) (*models.Application, error)
	ListApplications(db *gorm.DB, caller *auth.Caller, query *dto.ApplicationListQuery) ([]models.Application, error)
	ListCompanyApplications(db *gorm.DB, caller *auth.Caller, query *dto.ApplicationListQuery) ([]models.Application, error)
}

type ApplicationServiceImpl struct {
	appRepo          repositories.ApplicationRepository
	jobRepo          repositories.JobRepository
	companyRepo      repositories.CompanyRepository
	profileRepo      repositories.ProfileRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	mailer           *email.Dispatcher
	notifier         Notifier
	publisher        events.Publisher
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	mailer *email.Dispatcher,
	notifier Notifier,
	publisher events.Publisher,
) ApplicationService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ApplicationServiceImpl{
		appRepo:          appRepo,
		jobRepo:          jobRepo,
		companyRepo:      companyRepo,
		profileRepo:      profileRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		notifier:         notifier,
		publisher:        publisher,
	}
}

// ==========================
// Submission
// ==========================

func (s *ApplicationServiceImpl) SubmitApplication(ctx context.Context, db *gorm.DB, caller *auth.Caller, req *dto.CreateApplicationRequest) (*models.Application, error) {
	if err := auth.Authorize(caller, auth.EntityApplication, auth.OpCreate, auth.Subject{}); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(db, req.JobID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrJobNotAcceptingApplications
	}
	if !job.AcceptsApplications(now()) {
		return nil, apperrors.ErrApplicationDeadlinePassed
	}

	exists, err := s.appRepo.ExistsForJobAndUser(db, job.ID, caller.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	profile, err := s.profileRepo.FindByUserID(db, caller.ID)
	if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, handleRepoError(err)
	}
	if profile == nil {
		profile = &models.Profile{}
	}

	cv := strings.TrimSpace(req.CV)
	if profile.Resume == "" && cv == "" {
		return nil, apperrors.ErrDocumentRequired
	}

	// имя и email берутся из профиля, пустые поля - из учетной записи
	user, err := s.userRepo.FindByID(db, caller.ID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	app := &models.Application{
		JobID:       job.ID,
		UserID:      caller.ID,
		Name:        firstNonEmpty(profile.Name, user.Name, caller.Name),
		Email:       firstNonEmpty(profile.Email, user.Email, caller.Email),
		Resume:      profile.Resume,
		CV:          cv,
		CoverLetter: strings.TrimSpace(req.CoverLetter),
	}
	app.AppendStatus(models.ApplicationStatusPending, "", now())

	var companyNotification *models.Notification
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.appRepo.Create(tx, app); err != nil {
			return err
		}

		company, err := s.companyRepo.FindByID(tx, job.CompanyID)
		if err != nil {
			if errors.Is(err, repositories.ErrCompanyNotFound) {
				return nil
			}
			return err
		}
		companyNotification = &models.Notification{
			UserID:    company.UserID,
			Type:      models.NotificationTypeApplicationNew,
			Title:     "New application received",
			Message:   fmt.Sprintf("%s applied for %s", app.Name, job.Title),
			RelatedID: &app.ID,
		}
		return s.notificationRepo.Create(tx, companyNotification)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	app.Job = job

	logger.CtxInfo(ctx, "Application submitted", "application_id", app.ID, "job_id", job.ID)

	if companyNotification != nil {
		s.notifier.NotifyUser(companyNotification.UserID, EventNotification, companyNotification)
	}
	publish(ctx, s.publisher, events.ApplicationSubmitted, map[string]string{
		"applicationId": app.ID,
		"jobId":         job.ID,
		"userId":        app.UserID,
	})
	s.mailer.Send(ctx, app.Email, "Application received", email.TemplateApplicationReceived, email.TemplateData{
		"Name":        app.Name,
		"JobTitle":    job.Title,
		"CompanyName": job.CompanyName,
	})

	return app, nil
}

// ==========================
// Read
// ==========================

func (s *ApplicationServiceImpl) GetApplication(db *gorm.DB, caller *auth.Caller, applicationID string) (*models.Application, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	app, err := s.appRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if err := s.authorize(db, caller, app, auth.OpRead); err != nil {
		return nil, err
	}
	return app, nil
}

// ListApplications: соискатель видит свои заявки, админ - все, компания - заявки на свои вакансии
func (s *ApplicationServiceImpl) ListApplications(db *gorm.DB, caller *auth.Caller, query *dto.ApplicationListQuery) ([]models.Application, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}

	var (
		apps []models.Application
		err  error
	)
	switch caller.Role {
	case models.UserRoleJobseeker:
		apps, err = s.appRepo.ListByUser(db, caller.ID, models.ApplicationStatus(query.Status))
	case models.UserRoleAdmin:
		apps, err = s.appRepo.ListAll(db, repositories.ApplicationFilter{
			Status: models.ApplicationStatus(query.Status),
			JobID:  query.JobID,
		})
	case models.UserRoleCompany:
		return s.ListCompanyApplications(db, caller, query)
	default:
		return nil, apperrors.NewForbiddenError("Insufficient permissions")
	}
	if err != nil {
		return nil, handleRepoError(err)
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) ListCompanyApplications(db *gorm.DB, caller *auth.Caller, query *dto.ApplicationListQuery) ([]models.Application, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	if caller.Role != models.UserRoleCompany {
		return nil, apperrors.NewForbiddenError("Only companies can list company applications")
	}

	company, err := callerCompany(db, s.companyRepo, caller)
	if err != nil {
		return nil, err
	}
	if !company.IsApproved() {
		return nil, apperrors.ErrCompanyNotApproved
	}

	apps, err := s.appRepo.ListByCompany(db, company.ID, repositories.ApplicationFilter{
		Status: models.ApplicationStatus(query.Status),
		JobID:  query.JobID,
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return apps, nil
}

// ==========================
// Status workflow
// ==========================

// applicationPatch - поля запроса, которые роль вызывающего вправе менять
type applicationPatch struct {
	name, email, resume, cv, coverLetter, notes *string
	status                                      *models.ApplicationStatus
	notificationRead                            *bool
}

func scopePatch(role models.UserRole, req *dto.UpdateApplicationRequest) applicationPatch {
	scoped := req.ForRole(role)
	return applicationPatch{
		name:             scoped.Name,
		email:            scoped.Email,
		resume:           scoped.Resume,
		cv:               scoped.CV,
		coverLetter:      scoped.CoverLetter,
		notes:            scoped.Notes,
		status:           scoped.Status,
		notificationRead: scoped.NotificationRead,
	}
}

// applyFields применяет все, кроме статуса, и возвращает измененные колонки
func (p applicationPatch) applyFields(app *models.Application) []string {
	var fields []string
	set := func(dst *string, v *string, column string) {
		if v != nil {
			*dst = *v
			fields = append(fields, column)
		}
	}
	set(&app.Name, p.name, "name")
	set(&app.Email, p.email, "email")
	set(&app.Resume, p.resume, "resume")
	set(&app.CV, p.cv, "cv")
	set(&app.CoverLetter, p.coverLetter, "cover_letter")
	set(&app.Notes, p.notes, "notes")
	if p.notificationRead != nil {
		app.NotificationRead = *p.notificationRead
		fields = append(fields, "notification_read")
	}
	return fields
}

type statusTransition struct {
	previous     models.ApplicationStatus
	notes        string
	notification *models.Notification
}

// UpdateApplication - переход статуса и изменение полей в одной транзакции под блокировкой строки.
// Письмо, ws-уведомление и событие отправляются только после коммита.
func (s *ApplicationServiceImpl) UpdateApplication(ctx context.Context, db *gorm.DB, caller *auth.Caller, applicationID string, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	if !caller.Authenticated() {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}

	app, err := s.appRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if err := s.authorize(db, caller, app, auth.OpUpdate); err != nil {
		return nil, err
	}

	patch := scopePatch(caller.Role, req)
	if patch.status != nil && !patch.status.IsValid() {
		return nil, apperrors.NewValidationError("application", fmt.Sprintf("Invalid status value: %s", *patch.status))
	}

	var transition *statusTransition
	err = db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.appRepo.LockByID(tx, applicationID)
		if err != nil {
			return err
		}

		fields := patch.applyFields(locked)

		// сравнение со статусом под блокировкой: повтор того же статуса историю не трогает
		if patch.status != nil && *patch.status != locked.Status {
			t := &statusTransition{previous: locked.Status}
			if patch.notes != nil {
				t.notes = *patch.notes
			}
			locked.AppendStatus(*patch.status, t.notes, now())
			fields = append(fields, "status", "status_history", "notification_read")
			t.notification = statusNotification(locked)
			transition = t
		}

		app = locked
		if len(fields) == 0 {
			return nil
		}
		if err := s.appRepo.Update(tx, locked, uniqueFields(fields)...); err != nil {
			return err
		}
		if transition != nil {
			return s.notificationRepo.Create(tx, transition.notification)
		}
		return nil
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	if transition != nil {
		logger.CtxInfo(ctx, "Application status changed",
			"application_id", app.ID,
			"from", transition.previous,
			"to", app.Status,
			"by_role", caller.Role,
		)
		s.afterStatusChange(ctx, app, transition)
	}
	return app, nil
}

func (s *ApplicationServiceImpl) afterStatusChange(ctx context.Context, app *models.Application, t *statusTransition) {
	s.notifier.NotifyUser(app.UserID, EventNotification, t.notification)

	publish(ctx, s.publisher, events.ApplicationStatusChanged, map[string]string{
		"applicationId": app.ID,
		"jobId":         app.JobID,
		"userId":        app.UserID,
		"from":          string(t.previous),
		"to":            string(app.Status),
	})

	jobTitle, companyName := jobSummary(app)
	outcome := s.mailer.Send(ctx, app.Email, StatusMessage(app.Status), email.TemplateApplicationStatus, email.TemplateData{
		"Name":        app.Name,
		"Message":     StatusMessage(app.Status),
		"JobTitle":    jobTitle,
		"CompanyName": companyName,
		"Notes":       t.notes,
	})
	logger.CtxDebug(ctx, "Status email outcome", "application_id", app.ID, "outcome", outcome.Status)
}

func statusNotification(app *models.Application) *models.Notification {
	jobTitle, companyName := jobSummary(app)
	return &models.Notification{
		UserID:    app.UserID,
		Type:      models.NotificationTypeApplicationStatus,
		Title:     StatusMessage(app.Status),
		Message:   fmt.Sprintf("Your application for %s at %s is now %s.", jobTitle, companyName, app.Status),
		Read:      false,
		RelatedID: &app.ID,
	}
}

func jobSummary(app *models.Application) (title, companyName string) {
	if app.Job == nil {
		return "the position", "the company"
	}
	return app.Job.Title, app.Job.CompanyName
}

// authorize собирает Subject для политики заявки
func (s *ApplicationServiceImpl) authorize(db *gorm.DB, caller *auth.Caller, app *models.Application, op auth.Operation) error {
	subject := auth.Subject{OwnerUserID: app.UserID}

	if caller.Role == models.UserRoleCompany {
		company, err := callerCompany(db, s.companyRepo, caller)
		if err != nil {
			return err
		}
		subject.CallerCompany = company
		if app.Job != nil {
			subject.CompanyID = app.Job.CompanyID
		} else if job, err := s.jobRepo.FindByID(db, app.JobID); err == nil {
			subject.CompanyID = job.CompanyID
		}
	}

	return auth.Authorize(caller, auth.EntityApplication, op, subject)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func uniqueFields(fields []string) []string {
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
