package trip

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("trip not found")
	ErrValidation = errors.New("validation error")
)

// ValidationError описывает нарушение инварианта поездки или активности.
// errors.Is(err, ErrValidation) истинно для любой ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
