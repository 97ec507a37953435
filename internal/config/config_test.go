package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8080
  env: production
  cors_origins: ["https://jobs.example.com"]
database:
  driver: mysql
  url: "user:pass@tcp(localhost:3306)/jobs"
jwt:
  secret: s3cret
email:
  provider: resend
  resend_api_key: re_123
  from_email: noreply@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://jobs.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "resend", cfg.Email.Provider)
	// значения по умолчанию
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL())
	assert.Equal(t, 10*time.Second, cfg.EmailTimeout())
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Contains(t, cfg.Upload.AllowedTypes, "application/pdf")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs_test")
	t.Setenv("SERVER_ENV", "test")
	t.Setenv("SERVER_PORT", "4001")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg := FromEnv()
	assert.Equal(t, "postgres://localhost/jobs_test", cfg.Database.DSN)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 4001, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}
