package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_SkippedWithoutProvider(t *testing.T) {
	d := NewDispatcher(nil, nil, "noreply@jobboard.test", "Job Board", time.Second)

	out := d.Send(context.Background(), "alice@test.com", "subj", TemplateApplicationStatus, TemplateData{})
	assert.Equal(t, OutcomeSkipped, out.Status)
	assert.NoError(t, out.Err)

	var nilDispatcher *Dispatcher
	assert.False(t, nilDispatcher.Enabled())
}

func TestDispatcher_Sent(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return msg.From == "Job Board <noreply@jobboard.test>" &&
			len(msg.To) == 1 && msg.To[0] == "alice@test.com" &&
			strings.Contains(msg.HTML, "Backend Engineer")
	})).Return("msg-1", nil).Once()

	d := NewDispatcher(provider, nil, "noreply@jobboard.test", "Job Board", time.Second)
	out := d.Send(context.Background(), "alice@test.com", "Application update", TemplateApplicationStatus, TemplateData{
		"Name":        "Alice",
		"Message":     "Your application has been reviewed",
		"JobTitle":    "Backend Engineer",
		"CompanyName": "Acme",
	})

	assert.Equal(t, OutcomeSent, out.Status)
	assert.Equal(t, "msg-1", out.MessageID)
	provider.AssertExpectations(t)
}

func TestDispatcher_ProviderFailureIsReturnedAsOutcome(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Send", mock.Anything, mock.Anything).Return("", errors.New("smtp down")).Once()

	d := NewDispatcher(provider, nil, "noreply@jobboard.test", "", time.Second)
	out := d.Send(context.Background(), "alice@test.com", "subj", TemplatePasswordReset, TemplateData{"ResetURL": "http://x"})

	assert.Equal(t, OutcomeFailed, out.Status)
	require.Error(t, out.Err)
	provider.AssertNumberOfCalls(t, "Send", 1)
}

func TestDispatcher_UnknownTemplate(t *testing.T) {
	provider := new(mockProvider)
	d := NewDispatcher(provider, nil, "noreply@jobboard.test", "", time.Second)

	out := d.Send(context.Background(), "alice@test.com", "subj", "missing", nil)
	assert.Equal(t, OutcomeFailed, out.Status)
	provider.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNewProviderFromConfig(t *testing.T) {
	assert.Nil(t, NewProviderFromConfig(Config{}))
	assert.Nil(t, NewProviderFromConfig(Config{Provider: "resend"}))
	assert.Nil(t, NewProviderFromConfig(Config{Provider: "smtp", SMTPHost: "smtp.test"}))

	p := NewProviderFromConfig(Config{Provider: "resend", ResendAPIKey: "re_123"})
	require.NotNil(t, p)
	assert.Equal(t, "resend", p.Name())

	p = NewProviderFromConfig(Config{SMTPHost: "smtp.test", SMTPUsername: "u", SMTPPassword: "p"})
	require.NotNil(t, p)
	assert.Equal(t, "smtp", p.Name())
}
