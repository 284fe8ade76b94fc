package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/NordCoder/Expirus/internal/domain/notification"
	"go.uber.org/zap"
)

const maxErrBody = 512

type WebhookPayload struct {
	EventName string `json:"event_name"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	Username  string `json:"username,omitempty"`
}

type Webhook struct {
	client    *http.Client
	userAgent string
	eventName string
	username  string

	log *zap.Logger
}

type WebhookOpts struct {
	UserAgent string
	EventName string
	Username  string
}

func NewWebhook(client *http.Client, o WebhookOpts) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}
	return &Webhook{
		client:    client,
		userAgent: o.UserAgent,
		eventName: o.EventName,
		username:  o.Username,
		log:       zap.L().With(zap.String("component", "channel.webhook")),
	}
}

func (w *Webhook) WithLogger(l *zap.Logger) *Webhook {
	if l == nil {
		return w
	}
	cp := *w
	cp.log = l.With(zap.String("component", "channel.webhook"))
	return &cp
}

// Deliver makes exactly one POST to url. Anything but a 2xx answer is a failure.
func (w *Webhook) Deliver(ctx context.Context, url string, msg notification.Message) error {
	event := msg.Event
	if event == "" {
		event = w.eventName
	}
	body, err := json.Marshal(WebhookPayload{
		EventName: event,
		Message:   msg.Body,
		Status:    msg.Status,
		Username:  w.username,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if w.userAgent != "" {
		req.Header.Set("User-Agent", w.userAgent)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	w.log.Debug("webhook delivered", zap.String("url", url), zap.Int("code", resp.StatusCode))
	return nil
}
