package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	p, err := CleanPath("resumes/u1/cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "resumes/u1/cv.pdf", p)

	_, err = CleanPath("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = CleanPath("")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewStorage(Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "resumes/u1/cv.pdf", strings.NewReader("%PDF-1.4"), "application/pdf"))

	ok, err := s.Exists(ctx, "resumes/u1/cv.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	r, err := s.Get(ctx, "resumes/u1/cv.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(r)
	r.Close()
	assert.Equal(t, "%PDF-1.4", string(data))

	assert.Equal(t, "/uploads/resumes/u1/cv.pdf", s.URL("resumes/u1/cv.pdf"))

	require.NoError(t, s.Delete(ctx, "resumes/u1/cv.pdf"))
	ok, err = s.Exists(ctx, "resumes/u1/cv.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewStorage_R2RequiresEndpoint(t *testing.T) {
	_, err := NewStorage(Config{Type: "cloudflare_r2", Bucket: "docs"})
	assert.Error(t, err)

	s, err := NewStorage(Config{Type: "cloudflare_r2", Bucket: "docs", Endpoint: "https://acc.r2.cloudflarestorage.com", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.Equal(t, "https://docs.r2.dev/x.pdf", s.URL("x.pdf"))
}
