package events

import (
	"context"
	"time"
)

// Routing keys доменных событий
const (
	ApplicationSubmitted     = "application.submitted"
	ApplicationStatusChanged = "application.status_changed"
	CompanyStatusChanged     = "company.status_changed"
)

// Envelope - тело сообщения в exchange
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Publisher публикует события после коммита; ошибки публикации не должны ломать запрос
type Publisher interface {
	Publish(ctx context.Context, eventType string, data any) error
	Close() error
}

// NopPublisher используется, когда events.amqp_url не задан
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                                { return nil }
