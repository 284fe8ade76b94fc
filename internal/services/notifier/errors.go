package notifier

import "fmt"

type panicError struct {
	value any
}

func (e *panicError) Error() string { return fmt.Sprintf("sender panic: %v", e.value) }
