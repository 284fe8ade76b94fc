package notification

import (
	"errors"
	"time"

	"github.com/NordCoder/Expirus/internal/domain/subscription"
	"github.com/google/uuid"
)

type Kind string

const (
	KindWebhook Kind = "webhook"
	KindEmail   Kind = "email"
)

// Destination is either a webhook URL or an email address, never both.
type Destination struct {
	kind   Kind
	target string
}

var ErrEmptyTarget = errors.New("empty destination target")

func NewWebhookDestination(url string) (Destination, error) {
	if url == "" {
		return Destination{}, ErrEmptyTarget
	}
	return Destination{kind: KindWebhook, target: url}, nil
}

func NewEmailDestination(addr string) (Destination, error) {
	if addr == "" {
		return Destination{}, ErrEmptyTarget
	}
	return Destination{kind: KindEmail, target: addr}, nil
}

func (d Destination) Kind() Kind     { return d.kind }
func (d Destination) Target() string { return d.target }
func (d Destination) IsZero() bool   { return d.kind == "" }

type Job struct {
	ID           uuid.UUID
	Subscription subscription.Subscription
	Destination  Destination
	Note         string
	CreatedAt    time.Time
}

type Tick struct {
	Index int
	Date  subscription.Date
}

type Message struct {
	Event   string
	Subject string
	Body    string
	Status  string
}

const (
	StatusReminder = "success"
	StatusExpiring = "error"
)

// Delivery is the outcome of one tick's send attempt. Err == nil means delivered.
type Delivery struct {
	JobID     uuid.UUID
	Tick      Tick
	Channel   Kind
	Target    string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
}

func (d Delivery) OK() bool { return d.Err == nil }
