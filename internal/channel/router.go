package channel

import (
	"context"
	"fmt"

	"github.com/NordCoder/Expirus/internal/domain/notification"
)

// Transport delivers a rendered message to one target of a single channel kind.
type Transport interface {
	Deliver(ctx context.Context, target string, msg notification.Message) error
}

// Router is the notification.Sender that picks a transport by destination kind.
type Router struct {
	Webhook Transport
	Email   Transport
}

var _ notification.Sender = (*Router)(nil)

func (r *Router) Send(ctx context.Context, dst notification.Destination, msg notification.Message) error {
	var t Transport
	switch dst.Kind() {
	case notification.KindWebhook:
		t = r.Webhook
	case notification.KindEmail:
		t = r.Email
	}
	if t == nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedDestination, dst.Kind())
	}
	return t.Deliver(ctx, dst.Target(), msg)
}
