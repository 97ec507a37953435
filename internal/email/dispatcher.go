package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard_backend/internal/logger"
)

// Dispatcher делает ровно одну попытку отправки с таймаутом и возвращает Outcome.
// Ошибки провайдера только логируются.
type Dispatcher struct {
	provider  Provider
	templates *TemplateManager
	from      string
	timeout   time.Duration
}

func NewDispatcher(provider Provider, templates *TemplateManager, fromEmail, fromName string, timeout time.Duration) *Dispatcher {
	if templates == nil {
		templates = NewTemplateManager()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	from := fromEmail
	if fromName != "" && fromEmail != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}
	return &Dispatcher{
		provider:  provider,
		templates: templates,
		from:      from,
		timeout:   timeout,
	}
}

// Enabled - false, когда провайдер не сконфигурирован; nil-безопасен
func (d *Dispatcher) Enabled() bool {
	return d != nil && d.provider != nil
}

// Send рендерит шаблон и отправляет письмо одному получателю
func (d *Dispatcher) Send(ctx context.Context, to, subject, templateName string, data TemplateData) Outcome {
	if !d.Enabled() {
		logger.EmailLog(templateName, to, string(OutcomeSkipped), nil)
		return Outcome{Status: OutcomeSkipped}
	}
	if strings.TrimSpace(to) == "" {
		return d.fail(templateName, to, errors.New("empty recipient"))
	}

	html, err := d.templates.Render(templateName, data)
	if err != nil {
		return d.fail(templateName, to, err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	id, err := d.provider.Send(ctx, &Message{
		From:    d.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return d.fail(templateName, to, err)
	}

	logger.EmailLog(templateName, to, string(OutcomeSent), nil)
	return Outcome{Status: OutcomeSent, Provider: d.provider.Name(), MessageID: id}
}

func (d *Dispatcher) fail(templateName, to string, err error) Outcome {
	logger.EmailLog(templateName, to, string(OutcomeFailed), err)
	return Outcome{Status: OutcomeFailed, Provider: d.provider.Name(), Err: err}
}
