package email

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const defaultResendURL = "https://api.resend.com"

// ResendProvider отправляет письма через HTTP API Resend
type ResendProvider struct {
	client *resty.Client
}

func NewResendProvider(apiKey, baseURL string) *ResendProvider {
	if baseURL == "" {
		baseURL = defaultResendURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &ResendProvider{client: client}
}

func (p *ResendProvider) Name() string {
	return "resend"
}

func (p *ResendProvider) Send(ctx context.Context, msg *Message) (string, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"from":    msg.From,
			"to":      msg.To,
			"subject": msg.Subject,
			"html":    msg.HTML,
		}).
		Post("/emails")
	if err != nil {
		return "", fmt.Errorf("resend request: %w", err)
	}

	if resp.IsError() {
		reason := gjson.GetBytes(resp.Body(), "message").String()
		if reason == "" {
			reason = resp.Status()
		}
		return "", fmt.Errorf("resend returned %d: %s", resp.StatusCode(), reason)
	}

	return gjson.GetBytes(resp.Body(), "id").String(), nil
}
