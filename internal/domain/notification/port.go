package notification

import (
	"context"
	"time"
)

type Sender interface {
	Send(ctx context.Context, dst Destination, msg Message) error
}

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type Sink interface {
	Record(ctx context.Context, d Delivery)
}
