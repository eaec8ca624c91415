package commands

import (
	"errors"

	"ordermanager/internal/core/domain/rules/policies"
	"ordermanager/internal/pkg/errs"
	"ordermanager/internal/pkg/guard"
)

var ErrSetSmallOrderThresholdCommandIsNotConstructed = errors.New(
	"SetSmallOrderThresholdCommand must be created via NewSetSmallOrderThresholdCommand constructor",
)

// SetSmallOrderThresholdCommand changes the amount under which pending orders
// skip biometric verification.
type SetSmallOrderThresholdCommand struct { //nolint:recvcheck //using for validation
	threshold float64

	guard guard.ConstructorGuard
}

// NewSetSmallOrderThresholdCommand accepts thresholds in (0, 1000].
func NewSetSmallOrderThresholdCommand(threshold float64) (SetSmallOrderThresholdCommand, error) {
	if threshold <= 0 || threshold > policies.MaxSmallOrderThreshold {
		return SetSmallOrderThresholdCommand{},
			errs.NewValueIsOutOfRangeError("threshold", threshold, 0, policies.MaxSmallOrderThreshold)
	}

	return SetSmallOrderThresholdCommand{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetSmallOrderThresholdCommand) Validate() error {
	return c.guard.Validate(ErrSetSmallOrderThresholdCommandIsNotConstructed)
}

func (c SetSmallOrderThresholdCommand) Threshold() float64 {
	return c.threshold
}
