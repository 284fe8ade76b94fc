package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/NordCoder/Expirus/internal/domain/notification"
)

// fakeClock fires every After immediately and moves its time forward by the waited duration.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

func newFakeClock(now time.Time) *fakeClock { return &fakeClock{now: now} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.waits = append(c.waits, d)
	now := c.now
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

func (c *fakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

// blockingClock never fires, so a job stays parked before its second tick.
type blockingClock struct{ now time.Time }

func (c blockingClock) Now() time.Time                       { return c.now }
func (c blockingClock) After(time.Duration) <-chan time.Time { return nil }

type recordingSink struct {
	mu         sync.Mutex
	deliveries []notification.Delivery
}

func (s *recordingSink) Record(_ context.Context, d notification.Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, d)
}

func (s *recordingSink) All() []notification.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notification.Delivery(nil), s.deliveries...)
}

type senderFunc func(ctx context.Context, dst notification.Destination, msg notification.Message) error

func (f senderFunc) Send(ctx context.Context, dst notification.Destination, msg notification.Message) error {
	return f(ctx, dst, msg)
}
