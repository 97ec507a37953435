package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"jobboard_backend/internal/events"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/testutil"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type applicationFixture struct {
	companyUser *models.User
	company     *models.Company
	job         *models.Job
	seeker      *models.User
}

func seedApplicationFixture(t *testing.T, db *gorm.DB) applicationFixture {
	t.Helper()
	companyUser, company := testutil.CreateCompany(t, db, "hr@acme.test", models.CompanyStatusApproved)
	job := testutil.CreateJob(t, db, company, models.JobStatusActive)
	seeker := testutil.CreateUser(t, db, "seeker@test.com", models.UserRoleJobseeker)
	return applicationFixture{companyUser: companyUser, company: company, job: job, seeker: seeker}
}

func notificationsFor(t *testing.T, db *gorm.DB, userID string) []models.Notification {
	t.Helper()
	var out []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("created_at").Find(&out).Error)
	return out
}

// ==========================
// Submission
// ==========================

func TestSubmitApplication_CreatesPendingApplicationAndNotifiesCompany(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	testutil.CreateProfile(t, env.db, fx.seeker, "resumes/seeker/cv.pdf")

	app, err := env.services.ApplicationService.SubmitApplication(context.Background(), env.db, callerOf(fx.seeker), &dto.CreateApplicationRequest{
		JobID:       fx.job.ID,
		CoverLetter: "  I love Go  ",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	require.Len(t, app.StatusHistory, 1)
	assert.Equal(t, models.ApplicationStatusPending, app.StatusHistory[0].Status)
	assert.Equal(t, "resumes/seeker/cv.pdf", app.Resume)
	assert.Equal(t, "seeker", app.Name)
	assert.Equal(t, "seeker@test.com", app.Email)
	assert.Equal(t, "I love Go", app.CoverLetter)

	notes := notificationsFor(t, env.db, fx.companyUser.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationTypeApplicationNew, notes[0].Type)
	require.NotNil(t, notes[0].RelatedID)
	assert.Equal(t, app.ID, *notes[0].RelatedID)

	assert.Len(t, env.notifier.forUser(fx.companyUser.ID), 1)
	assert.Contains(t, env.publisher.events, events.ApplicationSubmitted)

	sent := env.provider.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"seeker@test.com"}, sent[0].To)
	assert.Equal(t, "Application received", sent[0].Subject)
}

func TestSubmitApplication_PrefersProfileContactsOverAccount(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	profile := testutil.CreateProfile(t, env.db, fx.seeker, "resumes/seeker/cv.pdf")
	require.NoError(t, env.db.Model(profile).Updates(map[string]interface{}{
		"name":  "Alice Seeker",
		"email": "",
	}).Error)

	app, err := env.services.ApplicationService.SubmitApplication(context.Background(), env.db, callerOf(fx.seeker), &dto.CreateApplicationRequest{
		JobID: fx.job.ID,
	})
	require.NoError(t, err)

	// имя из профиля, пустой email профиля дополняется из аккаунта
	assert.Equal(t, "Alice Seeker", app.Name)
	assert.Equal(t, "seeker@test.com", app.Email)
}

func TestSubmitApplication_RejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	svc := env.services.ApplicationService
	req := &dto.CreateApplicationRequest{JobID: fx.job.ID, CV: "cvs/seeker/cv.pdf"}

	_, err := svc.SubmitApplication(context.Background(), env.db, callerOf(fx.seeker), req)
	require.NoError(t, err)

	_, err = svc.SubmitApplication(context.Background(), env.db, callerOf(fx.seeker), req)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	var count int64
	env.db.Model(&models.Application{}).Where("job_id = ? AND user_id = ?", fx.job.ID, fx.seeker.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitApplication_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	svc := env.services.ApplicationService
	ctx := context.Background()

	t.Run("closed job", func(t *testing.T) {
		closed := testutil.CreateJob(t, env.db, fx.company, models.JobStatusClosed)
		_, err := svc.SubmitApplication(ctx, env.db, callerOf(fx.seeker), &dto.CreateApplicationRequest{JobID: closed.ID, CV: "cv.pdf"})
		assert.ErrorIs(t, err, apperrors.ErrJobNotAcceptingApplications)
	})

	t.Run("deadline passed", func(t *testing.T) {
		job := testutil.CreateJob(t, env.db, fx.company, models.JobStatusActive)
		require.NoError(t, env.db.Model(job).Update("application_deadline", time.Now().Add(-time.Hour)).Error)
		_, err := svc.SubmitApplication(ctx, env.db, callerOf(fx.seeker), &dto.CreateApplicationRequest{JobID: job.ID, CV: "cv.pdf"})
		assert.ErrorIs(t, err, apperrors.ErrApplicationDeadlinePassed)
	})

	t.Run("no resume and no cv", func(t *testing.T) {
		_, err := svc.SubmitApplication(ctx, env.db, callerOf(fx.seeker), &dto.CreateApplicationRequest{JobID: fx.job.ID})
		assert.ErrorIs(t, err, apperrors.ErrDocumentRequired)
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := svc.SubmitApplication(ctx, env.db, callerOf(fx.seeker), &dto.CreateApplicationRequest{JobID: "missing", CV: "cv.pdf"})
		assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	})

	t.Run("company cannot apply", func(t *testing.T) {
		_, err := svc.SubmitApplication(ctx, env.db, callerOf(fx.companyUser), &dto.CreateApplicationRequest{JobID: fx.job.ID, CV: "cv.pdf"})
		assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	})
}

// ==========================
// Status workflow
// ==========================

func TestUpdateApplication_StatusChangeFansOut(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	app := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)
	require.NoError(t, env.db.Model(app).Update("notification_read", true).Error)

	updated, err := env.services.ApplicationService.UpdateApplication(context.Background(), env.db, callerOf(fx.companyUser), app.ID, &dto.UpdateApplicationRequest{
		Status: statusPtr(models.ApplicationStatusInterview),
		Notes:  strPtr("Tuesday 10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusInterview, updated.Status)

	fresh := reload(t, env.db, app)
	assert.Equal(t, models.ApplicationStatusInterview, fresh.Status)
	assert.Equal(t, "Tuesday 10:00", fresh.Notes)
	assert.False(t, fresh.NotificationRead)
	require.Len(t, fresh.StatusHistory, 2)
	last := fresh.StatusHistory[1]
	assert.Equal(t, models.ApplicationStatusInterview, last.Status)
	assert.Equal(t, "Tuesday 10:00", last.Notes)
	assert.False(t, last.Date.Before(fresh.StatusHistory[0].Date))

	notes := notificationsFor(t, env.db, fx.seeker.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationTypeApplicationStatus, notes[0].Type)
	assert.Equal(t, services.StatusMessage(models.ApplicationStatusInterview), notes[0].Title)
	assert.False(t, notes[0].Read)
	require.NotNil(t, notes[0].RelatedID)
	assert.Equal(t, app.ID, *notes[0].RelatedID)

	pushes := env.notifier.forUser(fx.seeker.ID)
	require.Len(t, pushes, 1)
	assert.Equal(t, services.EventNotification, pushes[0].eventType)
	assert.Contains(t, env.publisher.events, events.ApplicationStatusChanged)

	sent := env.provider.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{fx.seeker.Email}, sent[0].To)
	assert.Equal(t, services.StatusMessage(models.ApplicationStatusInterview), sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Tuesday 10:00")
}

func TestUpdateApplication_SameStatusIsNoop(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	app := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)
	svc := env.services.ApplicationService
	req := &dto.UpdateApplicationRequest{Status: statusPtr(models.ApplicationStatusReviewed)}

	_, err := svc.UpdateApplication(context.Background(), env.db, callerOf(fx.companyUser), app.ID, req)
	require.NoError(t, err)
	_, err = svc.UpdateApplication(context.Background(), env.db, callerOf(fx.companyUser), app.ID, req)
	require.NoError(t, err)

	fresh := reload(t, env.db, app)
	assert.Len(t, fresh.StatusHistory, 2)
	assert.Len(t, notificationsFor(t, env.db, fx.seeker.ID), 1)
	assert.Len(t, env.provider.sentMessages(), 1)
}

func TestUpdateApplication_CompanyFieldScope(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	app := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)

	_, err := env.services.ApplicationService.UpdateApplication(context.Background(), env.db, callerOf(fx.companyUser), app.ID, &dto.UpdateApplicationRequest{
		Status: statusPtr(models.ApplicationStatusShortlisted),
		Name:   strPtr("Someone Else"),
		Email:  strPtr("else@test.com"),
	})
	require.NoError(t, err)

	fresh := reload(t, env.db, app)
	assert.Equal(t, models.ApplicationStatusShortlisted, fresh.Status)
	assert.Equal(t, app.Name, fresh.Name)
	assert.Equal(t, app.Email, fresh.Email)
}

func TestUpdateApplication_JobseekerCanOnlyMarkRead(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	app := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)

	_, err := env.services.ApplicationService.UpdateApplication(context.Background(), env.db, callerOf(fx.seeker), app.ID, &dto.UpdateApplicationRequest{
		Status:           statusPtr(models.ApplicationStatusHired),
		Notes:            strPtr("hire me"),
		NotificationRead: boolPtr(true),
	})
	require.NoError(t, err)

	fresh := reload(t, env.db, app)
	assert.Equal(t, models.ApplicationStatusPending, fresh.Status)
	assert.Empty(t, fresh.Notes)
	assert.True(t, fresh.NotificationRead)
	assert.Len(t, fresh.StatusHistory, 1)
	assert.Empty(t, notificationsFor(t, env.db, fx.seeker.ID))
}

func TestUpdateApplication_OwnershipContainment(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	app := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)
	svc := env.services.ApplicationService
	req := &dto.UpdateApplicationRequest{Status: statusPtr(models.ApplicationStatusRejected)}

	t.Run("another approved company", func(t *testing.T) {
		other, _ := testutil.CreateCompany(t, env.db, "other@corp.test", models.CompanyStatusApproved)
		_, err := svc.UpdateApplication(context.Background(), env.db, callerOf(other), app.ID, req)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
		_, err = svc.GetApplication(env.db, callerOf(other), app.ID)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	})

	t.Run("owner company not approved", func(t *testing.T) {
		require.NoError(t, env.db.Model(fx.company).Update("status", models.CompanyStatusPending).Error)
		t.Cleanup(func() {
			env.db.Model(fx.company).Update("status", models.CompanyStatusApproved)
		})
		_, err := svc.UpdateApplication(context.Background(), env.db, callerOf(fx.companyUser), app.ID, req)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	})

	t.Run("another jobseeker", func(t *testing.T) {
		stranger := testutil.CreateUser(t, env.db, "stranger@test.com", models.UserRoleJobseeker)
		_, err := svc.GetApplication(env.db, callerOf(stranger), app.ID)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.UpdateApplication(context.Background(), env.db, nil, app.ID, req)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
	})

	fresh := reload(t, env.db, app)
	assert.Equal(t, models.ApplicationStatusPending, fresh.Status)
	assert.Len(t, fresh.StatusHistory, 1)
	assert.Empty(t, notificationsFor(t, env.db, fx.seeker.ID))
	assert.Empty(t, env.provider.sentMessages())
}

func TestUpdateApplication_AdminUpdatesAnyField(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	app := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)
	admin := testutil.CreateUser(t, env.db, "admin@jobboard.test", models.UserRoleAdmin)

	_, err := env.services.ApplicationService.UpdateApplication(context.Background(), env.db, callerOf(admin), app.ID, &dto.UpdateApplicationRequest{
		Name:             strPtr("Corrected Name"),
		Status:           statusPtr(models.ApplicationStatusHired),
		NotificationRead: boolPtr(true),
	})
	require.NoError(t, err)

	fresh := reload(t, env.db, app)
	assert.Equal(t, "Corrected Name", fresh.Name)
	assert.Equal(t, models.ApplicationStatusHired, fresh.Status)
	// смена статуса всегда сбрасывает флаг прочтения
	assert.False(t, fresh.NotificationRead)
}

func TestUpdateApplication_InvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	app := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)

	_, err := env.services.ApplicationService.UpdateApplication(context.Background(), env.db, callerOf(fx.companyUser), app.ID, &dto.UpdateApplicationRequest{
		Status: statusPtr("archived"),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
	assert.Equal(t, models.ApplicationStatusPending, reload(t, env.db, app).Status)
}

func TestUpdateApplication_NotFound(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)

	_, err := env.services.ApplicationService.UpdateApplication(context.Background(), env.db, callerOf(fx.companyUser), "missing", &dto.UpdateApplicationRequest{
		Status: statusPtr(models.ApplicationStatusReviewed),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestUpdateApplication_EmailFailureDoesNotRollBack(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Send", mock.Anything, mock.Anything).Return("", errors.New("smtp down"))
	env := newTestEnvWithProvider(t, provider)
	fx := seedApplicationFixture(t, env.db)
	app := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)

	_, err := env.services.ApplicationService.UpdateApplication(context.Background(), env.db, callerOf(fx.companyUser), app.ID, &dto.UpdateApplicationRequest{
		Status: statusPtr(models.ApplicationStatusRejected),
	})
	require.NoError(t, err)

	fresh := reload(t, env.db, app)
	assert.Equal(t, models.ApplicationStatusRejected, fresh.Status)
	assert.Len(t, fresh.StatusHistory, 2)
	assert.Len(t, notificationsFor(t, env.db, fx.seeker.ID), 1)
	provider.AssertNumberOfCalls(t, "Send", 1)
}

func TestUpdateApplication_ConcurrentTransitionsAreNotLost(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	app := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)
	statuses := []models.ApplicationStatus{
		models.ApplicationStatusReviewed,
		models.ApplicationStatusShortlisted,
		models.ApplicationStatusInterview,
		models.ApplicationStatusHired,
		models.ApplicationStatusRejected,
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(statuses))
	for _, status := range statuses {
		wg.Add(1)
		go func(status models.ApplicationStatus) {
			defer wg.Done()
			_, err := env.services.ApplicationService.UpdateApplication(context.Background(), env.db, callerOf(fx.companyUser), app.ID, &dto.UpdateApplicationRequest{
				Status: statusPtr(status),
			})
			errs <- err
		}(status)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	fresh := reload(t, env.db, app)
	require.Len(t, fresh.StatusHistory, len(statuses)+1)
	assert.Equal(t, fresh.StatusHistory[len(statuses)].Status, fresh.Status)
	assert.Len(t, notificationsFor(t, env.db, fx.seeker.ID), len(statuses))
}

// ==========================
// Listing
// ==========================

func TestListApplications_ByRole(t *testing.T) {
	env := newTestEnv(t)
	fx := seedApplicationFixture(t, env.db)
	other := testutil.CreateUser(t, env.db, "other@test.com", models.UserRoleJobseeker)
	mine := testutil.CreateApplication(t, env.db, fx.job, fx.seeker)
	testutil.CreateApplication(t, env.db, fx.job, other)
	svc := env.services.ApplicationService

	apps, err := svc.ListApplications(env.db, callerOf(fx.seeker), &dto.ApplicationListQuery{})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, mine.ID, apps[0].ID)

	apps, err = svc.ListApplications(env.db, callerOf(fx.companyUser), &dto.ApplicationListQuery{})
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	pendingUser, _ := testutil.CreateCompany(t, env.db, "new@corp.test", models.CompanyStatusPending)
	_, err = svc.ListCompanyApplications(env.db, callerOf(pendingUser), &dto.ApplicationListQuery{})
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotApproved)
}
