package repositories_test

import (
	"testing"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewUserRepository()

	testutil.CreateUser(t, db, "dup@test.com", models.UserRoleJobseeker)
	err := repo.Create(db, &models.User{Email: "dup@test.com", PasswordHash: "x", Role: models.UserRoleJobseeker})
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)

	_, err = repo.FindByEmail(db, "missing@test.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserRepository_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewUserRepository()

	testutil.CreateUser(t, db, "alice@test.com", models.UserRoleJobseeker)
	testutil.CreateUser(t, db, "bob@test.com", models.UserRoleJobseeker)
	testutil.CreateCompany(t, db, "acme@test.com", models.CompanyStatusPending)

	users, total, err := repo.List(db, repositories.UserFilter{Role: models.UserRoleJobseeker, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	users, total, err = repo.List(db, repositories.UserFilter{Query: "ACME", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "acme@test.com", users[0].Email)
}

func TestCompanyRepository_OneCompanyPerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewCompanyRepository()

	user, company := testutil.CreateCompany(t, db, "acme@test.com", models.CompanyStatusPending)
	err := repo.Create(db, &models.Company{UserID: user.ID, Name: "Second"})
	assert.ErrorIs(t, err, repositories.ErrCompanyAlreadyExists)

	found, err := repo.FindByID(db, company.ID)
	require.NoError(t, err)
	require.NotNil(t, found.User)
	assert.Equal(t, user.Email, found.User.Email)

	pending, err := repo.List(db, models.CompanyStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestJobRepository_ListSearch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewJobRepository()

	_, company := testutil.CreateCompany(t, db, "acme@test.com", models.CompanyStatusApproved)
	testutil.CreateJob(t, db, company, models.JobStatusActive)
	closed := testutil.CreateJob(t, db, company, models.JobStatusClosed)
	closed.Title = "Designer"
	require.NoError(t, repo.Update(db, closed, "title"))

	jobs, total, err := repo.List(db, repositories.JobFilter{Status: models.JobStatusActive, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, jobs, 1)

	jobs, _, err = repo.List(db, repositories.JobFilter{Query: "design", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, closed.ID, jobs[0].ID)

	require.NoError(t, repo.Delete(db, closed.ID))
	_, err = repo.FindByID(db, closed.ID)
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)
}

func TestPasswordResetRepository_UpsertReplaces(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewPasswordResetRepository()
	user := testutil.CreateUser(t, db, "alice@test.com", models.UserRoleJobseeker)

	expires := time.Now().UTC().Add(24 * time.Hour)
	require.NoError(t, repo.Upsert(db, &models.PasswordResetToken{UserID: user.ID, Token: "first", ExpiresAt: expires}))
	require.NoError(t, repo.Upsert(db, &models.PasswordResetToken{UserID: user.ID, Token: "second", ExpiresAt: expires}))

	_, err := repo.FindByToken(db, "first")
	assert.ErrorIs(t, err, repositories.ErrResetTokenNotFound)

	token, err := repo.FindByToken(db, "second")
	require.NoError(t, err)
	assert.Equal(t, user.ID, token.UserID)
}

func TestProfileRepository_Save(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewProfileRepository()
	user := testutil.CreateUser(t, db, "alice@test.com", models.UserRoleJobseeker)

	_, err := repo.FindByUserID(db, user.ID)
	assert.ErrorIs(t, err, repositories.ErrProfileNotFound)

	profile := &models.Profile{UserID: user.ID, Name: "Alice", Skills: []string{"go", "sql"}}
	require.NoError(t, repo.Save(db, profile))

	profile.Headline = "Gopher"
	require.NoError(t, repo.Save(db, profile))

	loaded, err := repo.FindByUserID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gopher", loaded.Headline)
	assert.Equal(t, []string{"go", "sql"}, []string(loaded.Skills))
}
