package testutil

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"jobboard_backend/database"
	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var initLogger sync.Once

// NewTestDB открывает отдельную in-memory базу SQLite на тест и прогоняет миграции.
// Одно соединение: shared cache + несколько соединений дают "database is locked".
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	initLogger.Do(func() { logger.Init("test") })

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "не удалось открыть тестовую базу")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateUser создает пользователя; пароль по умолчанию "password123"
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Name:         strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error, "не удалось создать пользователя %s", email)
	return user
}

// CreateCompany создает пользователя-компанию вместе с профилем компании
func CreateCompany(t *testing.T, db *gorm.DB, email string, status models.CompanyStatus) (*models.User, *models.Company) {
	t.Helper()
	user := CreateUser(t, db, email, models.UserRoleCompany)
	company := &models.Company{
		UserID: user.ID,
		Name:   "Company " + user.Name,
		Status: status,
	}
	require.NoError(t, db.Create(company).Error)
	return user, company
}

func CreateJob(t *testing.T, db *gorm.DB, company *models.Company, status models.JobStatus) *models.Job {
	t.Helper()
	job := &models.Job{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Title:       "Backend Engineer",
		Description: "Go, PostgreSQL",
		Location:    "Remote",
		Type:        "full-time",
		Status:      status,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func CreateProfile(t *testing.T, db *gorm.DB, user *models.User, resume string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Resume: resume,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// CreateApplication вставляет заявку напрямую, минуя проверки сервиса
func CreateApplication(t *testing.T, db *gorm.DB, job *models.Job, user *models.User) *models.Application {
	t.Helper()
	app := &models.Application{
		JobID:  job.ID,
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		CV:     "/uploads/cv.pdf",
		Status: models.ApplicationStatusPending,
	}
	app.StatusHistory = append(app.StatusHistory, models.StatusChange{
		Status: models.ApplicationStatusPending,
		Date:   time.Now().UTC(),
	})
	require.NoError(t, db.Create(app).Error)
	return app
}
