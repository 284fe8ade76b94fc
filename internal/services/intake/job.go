package intake

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/NordCoder/Expirus/internal/domain/subscription"
	"github.com/google/uuid"
)

const (
	labelEmail        = "email"
	labelWebhookURL   = "webhook_url"
	labelSubscription = "Subscriptions"
	labelExpiryDate   = "expiry_date"

	defaultSubscriptionName = "your subscription"
)

// BuildJob turns a decoded payload into a job. channelBase, when set, lets a bare
// channel_id address base/channel_id.
func BuildJob(p Payload, channelBase string, now time.Time) (notification.Job, error) {
	dst, err := resolveDestination(p, channelBase)
	if err != nil {
		return notification.Job{}, err
	}

	raw, _ := p.Setting(labelExpiryDate)
	if raw == "" {
		return notification.Job{}, ErrMissingExpiry
	}
	expiry, err := subscription.ParseDate(raw)
	if err != nil {
		return notification.Job{}, ErrInvalidExpiry
	}

	name, _ := p.Setting(labelSubscription)
	name = singleLine(name)
	if name == "" {
		name = defaultSubscriptionName
	}

	return notification.Job{
		ID:           uuid.New(),
		Subscription: subscription.Subscription{Name: name, ExpiryDate: expiry},
		Destination:  dst,
		Note:         strings.TrimSpace(p.Message),
		CreatedAt:    now,
	}, nil
}

func resolveDestination(p Payload, channelBase string) (notification.Destination, error) {
	if v, _ := p.Setting(labelEmail); v != "" {
		addr, err := mail.ParseAddress(v)
		if err != nil {
			return notification.Destination{}, fmt.Errorf("%w: email: %v", ErrInvalidDestination, err)
		}
		return notification.NewEmailDestination(addr.Address)
	}
	if v, _ := p.Setting(labelWebhookURL); v != "" {
		return webhookDestination(v)
	}
	if v := strings.TrimSpace(p.ReturnURL); v != "" {
		return webhookDestination(v)
	}
	if id := strings.TrimSpace(p.ChannelID); id != "" && channelBase != "" {
		return webhookDestination(strings.TrimRight(channelBase, "/") + "/" + url.PathEscape(id))
	}
	return notification.Destination{}, ErrMissingDestination
}

func webhookDestination(raw string) (notification.Destination, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return notification.Destination{}, fmt.Errorf("%w: webhook url: %v", ErrInvalidDestination, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return notification.Destination{}, fmt.Errorf("%w: webhook url must be http or https", ErrInvalidDestination)
	}
	if u.Host == "" {
		return notification.Destination{}, fmt.Errorf("%w: webhook url has no host", ErrInvalidDestination)
	}
	return notification.NewWebhookDestination(u.String())
}

// singleLine folds control characters (CR, LF, tabs, ...) into single spaces.
func singleLine(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || unicode.IsControl(r)
	}), " ")
}
