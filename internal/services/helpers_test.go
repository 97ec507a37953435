package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/testutil"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string {
	return "mock"
}

func (m *mockProvider) Send(ctx context.Context, msg *email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

// sentMessages - все письма, которые дошли до провайдера
func (m *mockProvider) sentMessages() []*email.Message {
	var out []*email.Message
	for _, call := range m.Calls {
		if call.Method == "Send" {
			out = append(out, call.Arguments.Get(1).(*email.Message))
		}
	}
	return out
}

type pushed struct {
	userID    string
	eventType string
	payload   any
}

type recordingNotifier struct {
	mu     sync.Mutex
	pushed []pushed
}

func (n *recordingNotifier) NotifyUser(userID, eventType string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushed = append(n.pushed, pushed{userID, eventType, payload})
}

func (n *recordingNotifier) forUser(userID string) []pushed {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []pushed
	for _, p := range n.pushed {
		if p.userID == userID {
			out = append(out, p)
		}
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type testEnv struct {
	db        *gorm.DB
	provider  *mockProvider
	notifier  *recordingNotifier
	publisher *recordingPublisher
	storage   *memoryStorage
	services  *services.ServiceContainer
}

// newTestEnv - сервисы поверх SQLite; провайдер по умолчанию принимает любое письмо
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	provider := &mockProvider{}
	provider.On("Send", mock.Anything, mock.Anything).Return("msg-1", nil).Maybe()
	return newTestEnvWithProvider(t, provider)
}

func newTestEnvWithProvider(t *testing.T, provider *mockProvider) *testEnv {
	t.Helper()
	env := &testEnv{
		db:        testutil.NewTestDB(t),
		provider:  provider,
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		storage:   newMemoryStorage(),
	}
	env.services = services.NewServiceContainer(services.Dependencies{
		Tokens:      auth.NewTokenManager("test-secret", time.Hour),
		Mailer:      email.NewDispatcher(provider, nil, "noreply@jobboard.test", "Job Board", time.Second),
		Notifier:    env.notifier,
		Publisher:   env.publisher,
		Storage:     env.storage,
		FrontendURL: "http://localhost:3000",
	})
	return env
}

func callerOf(user *models.User) *auth.Caller {
	return &auth.Caller{ID: user.ID, Role: user.Role, Email: user.Email, Name: user.Name}
}

func reload(t *testing.T, db *gorm.DB, app *models.Application) *models.Application {
	t.Helper()
	var fresh models.Application
	if err := db.First(&fresh, "id = ?", app.ID).Error; err != nil {
		t.Fatalf("reload application: %v", err)
	}
	return &fresh
}

func statusPtr(s models.ApplicationStatus) *models.ApplicationStatus { return &s }
func strPtr(s string) *string                                      { return &s }
func boolPtr(b bool) *bool                                         { return &b }
