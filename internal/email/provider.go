package email

import (
	"context"
	"strings"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Name - имя провайдера для логов
	Name() string

	// Send отправляет письмо и возвращает id сообщения, если провайдер его выдает
	Send(ctx context.Context, msg *Message) (string, error)
}

// Config - настройки отправки, собираются из config.AppConfig.Email
type Config struct {
	Provider     string // smtp, resend
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	ResendAPIKey string
	ResendURL    string
	FromEmail    string
	FromName     string
}

// NewProviderFromConfig возвращает nil, если учетные данные не заданы:
// в этом случае Dispatcher помечает письма как Skipped.
func NewProviderFromConfig(cfg Config) Provider {
	switch strings.ToLower(cfg.Provider) {
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil
		}
		return NewResendProvider(cfg.ResendAPIKey, cfg.ResendURL)
	case "smtp", "":
		if cfg.SMTPHost == "" || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
			return nil
		}
		return NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return nil
}
