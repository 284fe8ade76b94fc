package intake

import "errors"

// Validation failures. The error text is returned to the caller as-is.
var (
	ErrMissingBody        = errors.New("missing JSON body")
	ErrInvalidJSON        = errors.New("invalid JSON body")
	ErrMissingSettings    = errors.New("missing settings")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrMissingDestination = errors.New("missing destination (email or webhook_url setting)")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrMissingExpiry      = errors.New("missing expiry_date setting")
	ErrInvalidExpiry      = errors.New("invalid expiry_date, expected dd/mm/yy")
)
