package client

import (
	"errors"

	xerrors "github.com/daytrack/daytrack/client/internal/errors"
	"github.com/daytrack/daytrack/client/internal/types"
)

var errEmptyBaseURL = errors.New("client: base URL cannot be empty")

// ErrNotFound is re-exported so callers compare against a single symbol.
var ErrNotFound = types.ErrNotFound

// IsRetryable reports whether err is a transient store failure that the
// client's retry policy would have retried.
func IsRetryable(err error) bool {
	var ce *xerrors.ClassifiedError
	if errors.As(err, &ce) {
		return ce.Category == xerrors.Recoverable
	}
	return false
}
