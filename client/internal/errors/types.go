// Package errors classifies store failures so callers can decide whether a
// request is worth retrying.
package errors

import "fmt"

// Category determines how a failure should be handled by retry logic.
type Category int

const (
	// Recoverable failures may succeed on retry: 5xx responses, timeouts,
	// connection resets.
	Recoverable Category = iota

	// Irrecoverable failures will not succeed on retry: 400, 401, 403, 404.
	Irrecoverable
)

func (c Category) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError wraps a store failure with its retry category.
type ClassifiedError struct {
	Category   Category
	StatusCode int    // HTTP status (0 for network-level failures)
	Message    string // server-provided message, if any
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// IsIrrecoverable reports whether err must not be retried.
func IsIrrecoverable(err error) bool {
	if ce, ok := err.(*ClassifiedError); ok {
		return ce.Category == Irrecoverable
	}
	return false
}
