package service

import (
	"errors"
	"fmt"
)

// ValidationError marks input rejected by a local guard. Handlers map it to
// a 400 with the reason inline.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ErrNotDeliverable is a first-class checkout outcome, not a failure: the
// computed distance exceeds every configured tier.
var ErrNotDeliverable = errors.New("address is outside the delivery area")
