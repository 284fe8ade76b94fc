package intake

import (
	"errors"
	"io"
	"net/http"

	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/NordCoder/Expirus/internal/obs"
	"github.com/NordCoder/Expirus/internal/services/notifier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const maxBody = 1 << 20

var mRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "intake_requests_total", Help: "Trigger requests by outcome",
}, []string{"outcome"})

type Launcher interface {
	Launch(job notification.Job) (*notifier.Run, error)
}

type Handler struct {
	Launcher    Launcher
	Clock       notification.Clock
	ChannelBase string
	Log         *zap.Logger
}

func NewHandler(l Launcher, clock notification.Clock, channelBase string, log *zap.Logger) *Handler {
	return &Handler{
		Launcher:    l,
		Clock:       clock,
		ChannelBase: channelBase,
		Log:         obs.Component(log, "intake"),
	}
}

// ServeHTTP writes and flushes the 202 before the job is launched.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := obs.WithTrace(r.Context(), h.Log)

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			mRequests.WithLabelValues("too_large").Inc()
			writeError(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
			return
		}
		mRequests.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, ErrInvalidJSON)
		return
	}

	p, err := Decode(raw)
	if err != nil {
		h.reject(w, log, err)
		return
	}
	job, err := BuildJob(p, h.ChannelBase, h.Clock.Now())
	if err != nil {
		h.reject(w, log, err)
		return
	}

	w.Header().Set("X-Job-ID", job.ID.String())
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusAccepted)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	if _, err := h.Launcher.Launch(job); err != nil {
		mRequests.WithLabelValues("dropped").Inc()
		log.Error("job not launched", zap.String("job_id", job.ID.String()), zap.Error(err))
		return
	}
	mRequests.WithLabelValues("accepted").Inc()
	log.Info("job accepted",
		zap.String("job_id", job.ID.String()),
		zap.String("channel", string(job.Destination.Kind())),
		zap.String("subscription", job.Subscription.Name),
		zap.Stringer("expiry", job.Subscription.ExpiryDate),
	)
}

func (h *Handler) reject(w http.ResponseWriter, log *zap.Logger, err error) {
	mRequests.WithLabelValues("invalid").Inc()
	log.Debug("trigger rejected", zap.Error(err))
	writeError(w, http.StatusBadRequest, err)
}
