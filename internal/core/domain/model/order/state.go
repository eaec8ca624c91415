package order

import (
	"fmt"

	"ordermanager/internal/pkg/errs"
)

// State is the lifecycle state of an order. Values are the lower snake case names
// that are persisted and exposed over HTTP.
type State string

const (
	StatePending        State = "pending"
	StateOnHold         State = "on_hold"
	StatePendingPayment State = "pending_payment"
	StateConfirmed      State = "confirmed"
	StateProcessing     State = "processing"
	StateShipped        State = "shipped"
	StateDelivered      State = "delivered"
	StateReturning      State = "returning"
	StateReturned       State = "returned"
	StateRefunded       State = "refunded"
	StateCancelled      State = "cancelled"

	// StateReviewing is referenced by the reviewing-state rule. No transition-table
	// entry leads into or out of it; only the user-cancellation escape applies.
	StateReviewing State = "reviewing"
)

// States returns every valid state in lifecycle order.
func States() []State {
	return []State{
		StatePending,
		StateOnHold,
		StatePendingPayment,
		StateConfirmed,
		StateProcessing,
		StateShipped,
		StateDelivered,
		StateReturning,
		StateReturned,
		StateRefunded,
		StateCancelled,
		StateReviewing,
	}
}

// ParseState converts a persisted or transported value into a State.
func ParseState(s string) (State, error) {
	state := State(s)
	if err := state.Validate(); err != nil {
		return "", err
	}
	return state, nil
}

// Validate returns an errs.ValueIsInvalidError for values outside the closed set.
func (s State) Validate() error {
	for _, valid := range States() {
		if s == valid {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%q is not a valid state", string(s)))
}

func (s State) String() string {
	return string(s)
}
