package notifier

import (
	"testing"
	"time"

	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/NordCoder/Expirus/internal/domain/subscription"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = subscription.NewDate(2025, time.February, 14)

func dates(ticks []notification.Tick) []string {
	out := make([]string, len(ticks))
	for i, t := range ticks {
		out[i] = t.Date.String()
	}
	return out
}

func TestTimeline_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		now    subscription.Date
		expiry subscription.Date
		window int
		want   []string
	}{
		{
			name:   "expiry a full window ahead",
			expiry: today.AddDays(7),
			window: 7,
			want: []string{
				"2025-02-14", "2025-02-15", "2025-02-16", "2025-02-17",
				"2025-02-18", "2025-02-19", "2025-02-20", "2025-02-21",
			},
		},
		{
			name:   "expiry today",
			expiry: today,
			window: 7,
			want:   []string{"2025-02-14"},
		},
		{
			name:   "expired three days ago",
			expiry: today.AddDays(-3),
			window: 7,
			want:   []string{"2025-02-11"},
		},
		{
			name:   "expiry beyond the window starts late",
			expiry: today.AddDays(10),
			window: 2,
			want:   []string{"2025-02-22", "2025-02-23", "2025-02-24"},
		},
		{
			name:   "zero window",
			expiry: today.AddDays(4),
			window: 0,
			want:   []string{"2025-02-18"},
		},
		{
			name:   "negative window behaves as zero",
			expiry: today.AddDays(4),
			window: -5,
			want:   []string{"2025-02-18"},
		},
		{
			name:   "crosses a month end",
			now:    subscription.NewDate(2025, time.February, 20),
			expiry: subscription.NewDate(2025, time.March, 2),
			window: 3,
			want:   []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now.IsZero() {
				now = today
			}
			got := Timeline(tt.expiry, tt.window, now)
			if diff := cmp.Diff(tt.want, dates(got)); diff != "" {
				t.Fatalf("timeline mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTimeline_Properties(t *testing.T) {
	for window := 0; window <= 10; window++ {
		for offset := -5; offset <= 15; offset++ {
			expiry := today.AddDays(offset)
			ticks := Timeline(expiry, window, today)
			require.NotEmpty(t, ticks)

			last := ticks[len(ticks)-1]
			assert.True(t, last.Date.Equal(expiry), "last tick must be the expiry day")

			if offset < 0 {
				assert.Len(t, ticks, 1)
				continue
			}

			first := expiry.AddDays(-window)
			if today.After(first) {
				first = today
			}
			assert.True(t, ticks[0].Date.Equal(first), "window=%d offset=%d", window, offset)
			assert.Len(t, ticks, first.DaysUntil(expiry)+1)

			for i, tk := range ticks {
				assert.Equal(t, i, tk.Index)
				if i > 0 {
					assert.Equal(t, 1, ticks[i-1].Date.DaysUntil(tk.Date), "ticks step one day")
				}
			}
		}
	}
}
