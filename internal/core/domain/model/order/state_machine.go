package order

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError identifies the rejected (state, event) pair.
type InvalidTransitionError struct {
	State State
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s with event %s", e.State, e.Event)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type transitionKey struct {
	from  State
	event Event
}

// transitions is the static lifecycle table. Each pair has exactly one target.
//
//	pending ──noVerificationNeeded──> pending_payment ──paymentSuccessful──> confirmed
//	   │                                   ^
//	   └─pendingBiometricalVerification─> on_hold ─biometricalVerificationSuccessful┘
//
//	confirmed ─> processing ─> shipped ─> delivered ─> returning ─> returned ─> refunded
//
// Cancellation by the user is not listed per state; see State.Next.
var transitions = map[transitionKey]State{
	{StatePending, EventPendingBiometricalVerification}:   StateOnHold,
	{StatePending, EventNoVerificationNeeded}:             StatePendingPayment,
	{StatePending, EventPaymentFailed}:                    StateCancelled,
	{StatePending, EventOrderCancelled}:                   StateCancelled,
	{StateOnHold, EventBiometricalVerificationSuccessful}: StatePendingPayment,
	{StateOnHold, EventVerificationFailed}:                StateCancelled,
	{StateOnHold, EventOrderCancelledByUser}:              StateCancelled,
	{StatePendingPayment, EventPaymentSuccessful}:         StateConfirmed,
	{StatePendingPayment, EventOrderCancelledByUser}:      StateCancelled,
	{StateConfirmed, EventPreparingShipment}:              StateProcessing,
	{StateConfirmed, EventOrderCancelledByUser}:           StateCancelled,
	{StateProcessing, EventItemDispatched}:                StateShipped,
	{StateProcessing, EventOrderCancelledByUser}:          StateCancelled,
	{StateShipped, EventItemReceivedByCustomer}:           StateDelivered,
	{StateShipped, EventDeliveryIssue}:                    StateOnHold,
	{StateShipped, EventOrderCancelledByUser}:             StateCancelled,
	{StateDelivered, EventReturnInitiatedByCustomer}:      StateReturning,
	{StateReturning, EventItemReceivedBack}:               StateReturned,
	{StateReturned, EventRefundProcessed}:                 StateRefunded,
}

// Transition is one row of the transition table.
type Transition struct {
	From  State
	Event Event
	To    State
}

// Transitions returns a copy of the transition table, sorted by source state and event.
func Transitions() []Transition {
	out := make([]Transition, 0, len(transitions))
	for key, to := range transitions {
		out = append(out, Transition{From: key.from, Event: key.event, To: to})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].Event < out[j].Event
	})
	return out
}

// Next returns the state reached from s by event.
//
// The table is consulted first. Failing that, EventOrderCancelledByUser moves any
// cancellable state to StateCancelled. Every other pair yields an
// *InvalidTransitionError.
func (s State) Next(event Event) (State, error) {
	if to, ok := transitions[transitionKey{from: s, event: event}]; ok {
		return to, nil
	}

	if event == EventOrderCancelledByUser && s.IsCancellable() {
		return StateCancelled, nil
	}

	return "", &InvalidTransitionError{State: s, Event: event}
}

// AllowedEvents returns the events with a table entry from s, plus
// EventOrderCancelledByUser when s is cancellable. The result holds no
// duplicates and is sorted lexicographically.
func (s State) AllowedEvents() []Event {
	seen := make(map[Event]struct{})
	for key := range transitions {
		if key.from == s {
			seen[key.event] = struct{}{}
		}
	}

	if s.IsCancellable() {
		seen[EventOrderCancelledByUser] = struct{}{}
	}

	events := make([]Event, 0, len(seen))
	for event := range seen {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}

// IsFinal reports whether s ends the forward lifecycle: delivered, refunded or cancelled.
func (s State) IsFinal() bool {
	switch s {
	case StateDelivered, StateRefunded, StateCancelled:
		return true
	default:
		return false
	}
}

// IsCancellable reports whether the user-cancellation escape applies to s.
// Delivered, returned, refunded and cancelled orders cannot be cancelled.
// Values outside the closed set are not cancellable either.
// This set differs from IsFinal on purpose.
func (s State) IsCancellable() bool {
	switch s {
	case StateDelivered, StateReturned, StateRefunded, StateCancelled:
		return false
	default:
		return s.Validate() == nil
	}
}
