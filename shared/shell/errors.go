package shell

import (
	"context"
	"errors"

	"github.com/heliosip/countryrules/rulestore"
)

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsDataAccessError checks if an error comes from the rule database.
func IsDataAccessError(err error) bool {
	return errors.Is(err, rulestore.ErrDataAccess)
}

// StatusFor maps a query error to the status used in metrics, spans and logs.
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	default:
		return StatusError
	}
}
