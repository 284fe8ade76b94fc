package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_deliveries_total", Help: "Reminder delivery attempts by channel and status",
	}, []string{"channel", "status"})
	mDeliveryDur = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "notifier_delivery_duration_seconds", Help: "Duration of one delivery attempt",
		Buckets: prometheus.DefBuckets,
	}, []string{"channel"})
	mJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_jobs_total", Help: "Jobs finished by outcome",
	}, []string{"outcome"})
	mActiveJobs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notifier_active_jobs", Help: "Jobs with reminders still pending",
	})
)
