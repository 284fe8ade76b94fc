package notifier

import (
	"fmt"
	"strings"

	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/NordCoder/Expirus/internal/domain/subscription"
)

const displayLayout = "02 January 2006"

// Render builds the reminder sent on day `on` for a job. The status turns to
// StatusExpiring once no full day is left.
func Render(job notification.Job, on subscription.Date) notification.Message {
	name := job.Subscription.Name
	expiry := job.Subscription.ExpiryDate
	left := on.DaysUntil(expiry)

	status := notification.StatusReminder
	if left <= 0 {
		status = notification.StatusExpiring
	}

	subject := fmt.Sprintf("%s %s", name, daysLeft(left))

	var b strings.Builder
	fmt.Fprintf(&b, "Reminder: %s %s (expiry date: %s).", name, daysLeft(left), expiry.Format(displayLayout))
	if note := strings.TrimSpace(job.Note); note != "" {
		b.WriteString("\n\n")
		b.WriteString(note)
	}

	return notification.Message{
		Subject: subject,
		Body:    b.String(),
		Status:  status,
	}
}

func daysLeft(n int) string {
	switch {
	case n > 1:
		return fmt.Sprintf("expires in %d days", n)
	case n == 1:
		return "expires tomorrow"
	case n == 0:
		return "expires today"
	case n == -1:
		return "expired yesterday"
	default:
		return fmt.Sprintf("expired %d days ago", -n)
	}
}
