package rules

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is wrapped by every ValidationError.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError names the validation rule that rejected a context.
type ValidationError struct {
	RuleID  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("business rule '%s' failed: %s", e.RuleID, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
