package main

import (
	"context"

	"github.com/NordCoder/Expirus/internal/channel"
	config "github.com/NordCoder/Expirus/internal/config/notifier"
	"go.uber.org/zap"
)

func buildSender(ctx context.Context, cfg *config.Config, l *zap.Logger) (*channel.Router, error) {
	webhook := channel.NewWebhook(channel.NewHTTPClient(cfg.Webhook), channel.WebhookOpts{
		UserAgent: cfg.Webhook.UserAgent,
		EventName: cfg.Webhook.EventName,
		Username:  cfg.Webhook.Username,
	}).WithLogger(l)

	router := &channel.Router{Webhook: webhook}
	switch cfg.Mail.Provider {
	case config.MailProviderSES:
		m, err := channel.NewSESMailer(ctx, cfg.SES, cfg.Mail)
		if err != nil {
			return nil, err
		}
		router.Email = m.WithLogger(l)
	default:
		router.Email = channel.NewMailer(cfg.SMTP, cfg.Mail).WithLogger(l)
	}
	return router, nil
}
