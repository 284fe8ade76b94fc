package channel

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedDestination = errors.New("unsupported destination")
	ErrNoRecipient            = errors.New("no recipient")
	ErrNoAuth                 = errors.New("smtp auth: server does not support AUTH")
)

// StatusError is a webhook answer outside the 2xx range.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook status %d", e.Code)
	}
	return fmt.Sprintf("webhook status %d: %s", e.Code, e.Body)
}
