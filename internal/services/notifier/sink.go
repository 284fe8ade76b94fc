package notifier

import (
	"context"

	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/NordCoder/Expirus/internal/obs"
	"go.uber.org/zap"
)

type LogSink struct {
	log *zap.Logger
}

var _ notification.Sink = (*LogSink)(nil)

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: obs.Component(log, "notifier.sink")}
}

func (s *LogSink) Record(ctx context.Context, d notification.Delivery) {
	status := "ok"
	if !d.OK() {
		status = "error"
	}
	mDeliveries.WithLabelValues(string(d.Channel), status).Inc()
	mDeliveryDur.WithLabelValues(string(d.Channel)).Observe(d.Duration.Seconds())

	log := s.log.With(obs.TraceFields(ctx)...).With(
		zap.String("job_id", d.JobID.String()),
		zap.Int("tick", d.Tick.Index),
		zap.Stringer("tick_date", d.Tick.Date),
		zap.String("channel", string(d.Channel)),
		zap.Duration("elapsed", d.Duration),
	)
	if d.OK() {
		log.Info("reminder delivered")
		return
	}
	log.Warn("reminder delivery failed", zap.Error(d.Err))
}
