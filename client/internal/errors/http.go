package errors

import "fmt"

// categoryFor maps an HTTP status code to a retry category. 4xx is final
// except 408 and 429; 5xx and anything unexpected is retried.
func categoryFor(statusCode int) Category {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	default:
		return Recoverable
	}
}

// NewHTTPError builds a classified error for a non-2xx store response.
// message is the server's optional human-readable payload.
func NewHTTPError(statusCode int, message, operation string) *ClassifiedError {
	return &ClassifiedError{
		Category:   categoryFor(statusCode),
		StatusCode: statusCode,
		Message:    message,
		Underlying: fmt.Errorf("%s: status %d", operation, statusCode),
	}
}

// NewNetworkError builds a classified error for a transport-level failure.
// Network failures are always treated as transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}

// ServerMessage extracts the backend's message from err, if one was carried.
func ServerMessage(err error) string {
	if ce, ok := err.(*ClassifiedError); ok {
		return ce.Message
	}
	return ""
}
