package notifier

import (
	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/NordCoder/Expirus/internal/domain/subscription"
)

// Timeline lists one tick per calendar day from max(today, expiry-window) through expiry.
// An expiry already in the past yields the single tick {0, expiry}.
func Timeline(expiry subscription.Date, windowDays int, today subscription.Date) []notification.Tick {
	if windowDays < 0 {
		windowDays = 0
	}
	start := expiry.AddDays(-windowDays)
	if today.After(start) {
		start = today
	}
	if start.After(expiry) {
		return []notification.Tick{{Index: 0, Date: expiry}}
	}

	n := start.DaysUntil(expiry) + 1
	ticks := make([]notification.Tick, 0, n)
	for i := 0; i < n; i++ {
		ticks = append(ticks, notification.Tick{Index: i, Date: start.AddDays(i)})
	}
	return ticks
}
