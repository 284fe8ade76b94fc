package notifier

import (
	"context"
	"time"

	config "github.com/NordCoder/Expirus/internal/config/notifier"
	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/NordCoder/Expirus/internal/domain/subscription"
	"github.com/NordCoder/Expirus/internal/obs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Dispatcher holds no per-job state; one value serves every job concurrently.
type Dispatcher struct {
	Sender notification.Sender
	Clock  notification.Clock
	Sink   notification.Sink

	WindowDays   int
	TickInterval time.Duration
	SendTimeout  time.Duration
	Location     *time.Location

	Log *zap.Logger
}

func NewDispatcher(cfg config.Dispatch, sender notification.Sender, clock notification.Clock, sink notification.Sink, log *zap.Logger) *Dispatcher {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	return &Dispatcher{
		Sender:       sender,
		Clock:        clock,
		Sink:         sink,
		WindowDays:   cfg.WindowDays,
		TickInterval: cfg.TickInterval,
		SendTimeout:  cfg.SendTimeout,
		Location:     loc,
		Log:          obs.Component(log, "notifier.dispatch"),
	}
}

func (d *Dispatcher) location() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

func (d *Dispatcher) today() subscription.Date {
	return subscription.DateOf(d.Clock.Now().In(d.location()))
}

// waitFor is how long tick has to wait: the tick interval after the previous send,
// but never less than the time left until the tick's day begins.
func (d *Dispatcher) waitFor(tick notification.Tick) time.Duration {
	var wait time.Duration
	if tick.Index > 0 {
		wait = d.TickInterval
	}
	y, m, day := tick.Date.Time().Date()
	begins := time.Date(y, m, day, 0, 0, 0, 0, d.location())
	if until := begins.Sub(d.Clock.Now()); until > wait {
		wait = until
	}
	return wait
}

// Run sends every reminder of job in order. A failed send never stops the sequence;
// only ctx cancellation does, in which case ctx.Err() is returned.
func (d *Dispatcher) Run(ctx context.Context, job notification.Job) error {
	ticks := Timeline(job.Subscription.ExpiryDate, d.WindowDays, d.today())

	tr := otel.Tracer("notifier.dispatch")
	ctx, span := tr.Start(ctx, "notifier.job",
		trace.WithAttributes(
			attribute.String("job.id", job.ID.String()),
			attribute.String("job.channel", string(job.Destination.Kind())),
			attribute.String("job.expiry", job.Subscription.ExpiryDate.String()),
			attribute.Int("job.ticks", len(ticks)),
		),
	)
	defer span.End()

	log := obs.WithTrace(ctx, d.Log).With(zap.String("job_id", job.ID.String()))
	log.Info("job started",
		zap.Int("ticks", len(ticks)),
		zap.Stringer("first", ticks[0].Date),
		zap.Stringer("last", ticks[len(ticks)-1].Date),
	)

	failed := 0
	for _, tick := range ticks {
		if wait := d.waitFor(tick); wait > 0 {
			select {
			case <-ctx.Done():
				span.SetAttributes(attribute.Int("job.failed", failed))
				log.Info("job cancelled", zap.Int("next_tick", tick.Index))
				return ctx.Err()
			case <-d.Clock.After(wait):
			}
		}
		if !d.tick(ctx, tr, job, tick) {
			failed++
		}
	}

	span.SetAttributes(attribute.Int("job.failed", failed))
	log.Info("job finished", zap.Int("ticks", len(ticks)), zap.Int("failed", failed))
	return nil
}

func (d *Dispatcher) tick(ctx context.Context, tr trace.Tracer, job notification.Job, tick notification.Tick) bool {
	ctx, span := tr.Start(ctx, "notifier.tick",
		trace.WithAttributes(
			attribute.Int("tick.index", tick.Index),
			attribute.String("tick.date", tick.Date.String()),
		),
	)
	defer span.End()

	on := tick.Date
	if today := d.today(); today.After(on) {
		on = today
	}
	msg := Render(job, on)

	sendCtx, cancel := context.WithTimeout(ctx, d.SendTimeout)
	start := d.Clock.Now()
	err := d.send(sendCtx, job.Destination, msg)
	elapsed := d.Clock.Now().Sub(start)
	cancel()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		span.SetAttributes(attribute.String("delivery.status", "error"))
	} else {
		span.SetAttributes(attribute.String("delivery.status", "ok"))
	}

	d.Sink.Record(ctx, notification.Delivery{
		JobID:     job.ID,
		Tick:      tick,
		Channel:   job.Destination.Kind(),
		Target:    job.Destination.Target(),
		StartedAt: start,
		Duration:  elapsed,
		Err:       err,
	})
	return err == nil
}

// send reports a sender panic as an error.
func (d *Dispatcher) send(ctx context.Context, dst notification.Destination, msg notification.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return d.Sender.Send(ctx, dst, msg)
}
