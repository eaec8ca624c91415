// Package order provides the Order aggregate and the finite-state machine that
// governs its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding products, amount, state and metadata
//   - State: the closed set of lifecycle states
//   - Event: the closed set of domain events that drive transitions
//   - the static transition table with its queries (Next, AllowedEvents,
//     IsFinal, IsCancellable)
//   - EventRecord: one entry of an order's audit log
//   - Changed: the domain event emitted on creation and on every transition
//
// Key business rules:
//   - Orders must have at least one product and a positive amount
//   - New orders start in StatePending
//   - A (state, event) pair is legal only if it is in the transition table, or the
//     event is EventOrderCancelledByUser and the state is cancellable
//   - The transition table is built once and never mutated
package order
