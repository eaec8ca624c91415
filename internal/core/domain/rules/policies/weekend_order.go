package policies

import (
	"fmt"
	"time"

	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/pkg/errs"
)

// DefaultWeekendThreshold is the amount above which weekend orders are held.
const DefaultWeekendThreshold = 500.0

// WeekendOrder only lets large pending orders be cancelled on Saturdays and
// Sundays (UTC). It is disabled by default.
type WeekendOrder struct {
	rules.FilterBase
	threshold float64
	clock     Clock
}

func NewWeekendOrder(threshold float64, clock Clock) (*WeekendOrder, error) {
	if threshold <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("weekend_threshold", fmt.Errorf("%v is not greater than 0", threshold))
	}
	if clock == nil {
		clock = time.Now
	}
	return &WeekendOrder{
		FilterBase: rules.NewFilterBase(WeekendOrderID,
			fmt.Sprintf("Restrict orders over $%.2f on weekends", threshold), rules.PriorityMedium, false),
		threshold: threshold,
		clock:     clock,
	}, nil
}

func (r *WeekendOrder) AppliesTo(ctx rules.Context) bool {
	day := r.clock().UTC().Weekday()
	weekend := day == time.Saturday || day == time.Sunday
	return weekend && ctx.Amount() > r.threshold && ctx.State() == order.StatePending
}

func (r *WeekendOrder) FilterEvents([]order.Event, rules.Context) ([]order.Event, error) {
	return []order.Event{order.EventOrderCancelledByUser}, nil
}
