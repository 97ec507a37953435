package services_test

import (
	"context"
	"testing"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/testutil"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_AdminAccountsAreImmutable(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin@jobboard.test", models.UserRoleAdmin)
	second := testutil.CreateUser(t, env.db, "second@jobboard.test", models.UserRoleAdmin)
	svc := env.services.UserService

	_, err := svc.UpdateUser(context.Background(), env.db, callerOf(admin), second.ID, &dto.AdminUpdateUserRequest{Name: strPtr("Renamed")})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	err = svc.DeleteUser(context.Background(), env.db, callerOf(admin), second.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	var fresh models.User
	require.NoError(t, env.db.First(&fresh, "id = ?", second.ID).Error)
	assert.Equal(t, second.Name, fresh.Name)
}

func TestUserService_UpdateUser(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin@jobboard.test", models.UserRoleAdmin)
	seeker := testutil.CreateUser(t, env.db, "seeker@test.com", models.UserRoleJobseeker)
	testutil.CreateUser(t, env.db, "taken@test.com", models.UserRoleJobseeker)
	svc := env.services.UserService

	updated, err := svc.UpdateUser(context.Background(), env.db, callerOf(admin), seeker.ID, &dto.AdminUpdateUserRequest{
		Name:     strPtr("New Name"),
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.False(t, updated.IsActive)
	assert.Equal(t, models.UserRoleJobseeker, updated.Role)

	_, err = svc.UpdateUser(context.Background(), env.db, callerOf(admin), seeker.ID, &dto.AdminUpdateUserRequest{Email: strPtr("TAKEN@test.com")})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = svc.UpdateUser(context.Background(), env.db, callerOf(seeker), seeker.ID, &dto.AdminUpdateUserRequest{Name: strPtr("Self")})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestUserService_DeleteCompanyUserCascades(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin@jobboard.test", models.UserRoleAdmin)
	owner, company := testutil.CreateCompany(t, env.db, "owner@corp.test", models.CompanyStatusApproved)
	seeker := testutil.CreateUser(t, env.db, "seeker@test.com", models.UserRoleJobseeker)
	job := testutil.CreateJob(t, env.db, company, models.JobStatusActive)
	testutil.CreateApplication(t, env.db, job, seeker)

	require.NoError(t, env.services.UserService.DeleteUser(context.Background(), env.db, callerOf(admin), owner.ID))

	for _, model := range []any{&models.User{}, &models.Company{}} {
		var count int64
		env.db.Model(model).Where("id IN ?", []string{owner.ID, company.ID}).Count(&count)
		assert.Zero(t, count)
	}
	var jobs, apps int64
	env.db.Model(&models.Job{}).Where("company_id = ?", company.ID).Count(&jobs)
	env.db.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&apps)
	assert.Zero(t, jobs)
	assert.Zero(t, apps)

	var seekers int64
	env.db.Model(&models.User{}).Where("id = ?", seeker.ID).Count(&seekers)
	assert.EqualValues(t, 1, seekers)
}

func TestUserService_ListUsersFiltersByRole(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin@jobboard.test", models.UserRoleAdmin)
	testutil.CreateUser(t, env.db, "a@test.com", models.UserRoleJobseeker)
	testutil.CreateUser(t, env.db, "b@test.com", models.UserRoleJobseeker)
	testutil.CreateCompany(t, env.db, "c@corp.test", models.CompanyStatusPending)

	page, err := env.services.UserService.ListUsers(env.db, callerOf(admin), &dto.UserListQuery{Role: "jobseeker"}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
}
