package policies

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/pkg/errs"
)

// Small order threshold bounds.
const (
	DefaultSmallOrderThreshold = 20.0
	MaxSmallOrderThreshold     = 1000.0
)

// SmallOrder lets pending orders at or under the threshold skip biometric
// verification.
type SmallOrder struct {
	rules.FilterBase
	threshold atomic.Uint64
}

// NewSmallOrder creates the rule with threshold in (0, MaxSmallOrderThreshold].
func NewSmallOrder(threshold float64) (*SmallOrder, error) {
	r := &SmallOrder{
		FilterBase: rules.NewFilterBase(SmallOrderID, "", rules.PriorityHigh, true),
	}
	if err := r.SetThreshold(threshold); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SmallOrder) Description() string {
	return fmt.Sprintf("Orders $%.2f or less do not require biometric verification", r.Threshold())
}

// Threshold returns the current amount limit.
func (r *SmallOrder) Threshold() float64 {
	return math.Float64frombits(r.threshold.Load())
}

// SetThreshold changes the amount limit. It takes effect on the next pass.
func (r *SmallOrder) SetThreshold(threshold float64) error {
	if threshold <= 0 || threshold > MaxSmallOrderThreshold {
		return errs.NewValueIsOutOfRangeError("threshold", threshold, 0, MaxSmallOrderThreshold)
	}
	r.threshold.Store(math.Float64bits(threshold))
	return nil
}

func (r *SmallOrder) AppliesTo(ctx rules.Context) bool {
	return ctx.State() == order.StatePending && ctx.Amount() <= r.Threshold()
}

func (r *SmallOrder) FilterEvents(events []order.Event, _ rules.Context) ([]order.Event, error) {
	return slices.DeleteFunc(events, func(e order.Event) bool {
		return e == order.EventPendingBiometricalVerification
	}), nil
}
