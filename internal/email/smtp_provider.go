package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider для SMTP
type SMTPProvider struct {
	dialer *gomail.Dialer
}

func NewSMTPProvider(host string, port int, username, password string) *SMTPProvider {
	if port == 0 {
		port = 587
	}
	return &SMTPProvider{
		dialer: gomail.NewDialer(host, port, username, password),
	}
}

func (p *SMTPProvider) Name() string {
	return "smtp"
}

// Send - gomail не принимает context, поэтому таймаут соблюдается снаружи:
// по истечении ctx вызывающий получает ошибку, а горутина дописывает в фоне.
func (p *SMTPProvider) Send(ctx context.Context, msg *Message) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	done := make(chan error, 1)
	go func() {
		done <- p.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp send: %w", err)
		}
		return "", nil
	case <-ctx.Done():
		return "", fmt.Errorf("smtp send: %w", ctx.Err())
	}
}
