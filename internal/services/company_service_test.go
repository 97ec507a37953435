package services_test

import (
	"context"
	"testing"

	"jobboard_backend/internal/events"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/testutil"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerateCompany_RejectionEmailCarriesReason(t *testing.T) {
	env := newTestEnv(t)
	owner, company := testutil.CreateCompany(t, env.db, "owner@acme.test", models.CompanyStatusPending)
	admin := testutil.CreateUser(t, env.db, "admin@jobboard.test", models.UserRoleAdmin)

	moderated, err := env.services.CompanyService.ModerateCompany(context.Background(), env.db, callerOf(admin), company.ID, &dto.ModerateCompanyRequest{
		Status:          models.CompanyStatusRejected,
		RejectionReason: "Incomplete registration documents",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CompanyStatusRejected, moderated.Status)

	var fresh models.Company
	require.NoError(t, env.db.First(&fresh, "id = ?", company.ID).Error)
	assert.Equal(t, models.CompanyStatusRejected, fresh.Status)
	assert.NotContains(t, fresh.Description, "Incomplete registration documents")

	sent := env.provider.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{owner.Email}, sent[0].To)
	assert.Contains(t, sent[0].HTML, "Incomplete registration documents")
	assert.Contains(t, sent[0].HTML, "rejected")

	pushes := env.notifier.forUser(owner.ID)
	require.Len(t, pushes, 1)
	assert.Equal(t, services.EventCompanyStatus, pushes[0].eventType)
	assert.Contains(t, env.publisher.events, events.CompanyStatusChanged)
}

func TestModerateCompany_ApprovalOmitsReason(t *testing.T) {
	env := newTestEnv(t)
	_, company := testutil.CreateCompany(t, env.db, "owner@acme.test", models.CompanyStatusPending)
	admin := testutil.CreateUser(t, env.db, "admin@jobboard.test", models.UserRoleAdmin)

	_, err := env.services.CompanyService.ModerateCompany(context.Background(), env.db, callerOf(admin), company.ID, &dto.ModerateCompanyRequest{
		Status:          models.CompanyStatusApproved,
		RejectionReason: "ignored",
	})
	require.NoError(t, err)

	sent := env.provider.sentMessages()
	require.Len(t, sent, 1)
	assert.NotContains(t, sent[0].HTML, "ignored")
}

func TestModerateCompany_OnlyAdmin(t *testing.T) {
	env := newTestEnv(t)
	owner, company := testutil.CreateCompany(t, env.db, "owner@acme.test", models.CompanyStatusPending)

	_, err := env.services.CompanyService.ModerateCompany(context.Background(), env.db, callerOf(owner), company.ID, &dto.ModerateCompanyRequest{
		Status: models.CompanyStatusApproved,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	assert.Empty(t, env.provider.sentMessages())
}

func TestCompanyService_CreateAndUpdateOwnProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.CompanyService
	user := testutil.CreateUser(t, env.db, "founder@startup.test", models.UserRoleCompany)

	company, err := svc.CreateCompany(env.db, callerOf(user), &dto.CreateCompanyRequest{Name: " Startup "})
	require.NoError(t, err)
	assert.Equal(t, "Startup", company.Name)
	assert.Equal(t, models.CompanyStatusPending, company.Status)

	_, err = svc.CreateCompany(env.db, callerOf(user), &dto.CreateCompanyRequest{Name: "Again"})
	assert.ErrorIs(t, err, apperrors.ErrCompanyAlreadyExists)

	updated, err := svc.UpdateMyCompany(env.db, callerOf(user), &dto.UpdateCompanyRequest{Website: strPtr("https://startup.test")})
	require.NoError(t, err)
	assert.Equal(t, "https://startup.test", updated.Website)
	assert.Equal(t, "Startup", updated.Name)

	other, _ := testutil.CreateCompany(t, env.db, "other@corp.test", models.CompanyStatusApproved)
	_, err = svc.GetCompany(env.db, callerOf(other), company.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	seeker := testutil.CreateUser(t, env.db, "seeker@test.com", models.UserRoleJobseeker)
	_, err = svc.CreateCompany(env.db, callerOf(seeker), &dto.CreateCompanyRequest{Name: "Nope"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestCompanyService_ListCompaniesByStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin@jobboard.test", models.UserRoleAdmin)
	testutil.CreateCompany(t, env.db, "a@corp.test", models.CompanyStatusPending)
	testutil.CreateCompany(t, env.db, "b@corp.test", models.CompanyStatusApproved)

	pending, err := env.services.CompanyService.ListCompanies(env.db, callerOf(admin), &dto.CompanyListQuery{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.CompanyStatusPending, pending[0].Status)

	all, err := env.services.CompanyService.ListCompanies(env.db, callerOf(admin), &dto.CompanyListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
