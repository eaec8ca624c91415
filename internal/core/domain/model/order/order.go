package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidOrderData is wrapped by every creation-time validation failure.
	ErrInvalidOrderData = errors.New("invalid order data")
)

// Bookkeeping metadata keys written by the aggregate.
const (
	MetaCreatedBy      = "created_by"
	MetaInitialState   = "initial_state"
	MetaLastEvent      = "last_event"
	MetaLastTransition = "last_transition"
	MetaProcessedAt    = "processed_at"
)

const createdByOrderService = "order_service"

// Order is the aggregate root of a purchase moving through the lifecycle.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must reference at least one non-blank product identifier
//   - Amount must be positive
//   - State changes only through Apply, which consults the transition table
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id         kernel.UUID
	productIDs []string
	amount     float64
	state      State
	metadata   kernel.Metadata
	createdAt  time.Time
	updatedAt  time.Time

	// changes are domain events not yet handed to a publisher
	changes []Changed

	isConstructed bool
}

// NewOrder creates a pending order.
//
// Caller metadata is copied and extended with the created_by and initial_state
// bookkeeping keys. Validation failures are joined and wrapped with
// ErrInvalidOrderData.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), []string{"sku-1"}, 15, nil, time.Now())
//	if errors.Is(err, order.ErrInvalidOrderData) {
//	    // reject the request
//	}
func NewOrder(
	id kernel.UUID,
	productIDs []string,
	amount float64,
	metadata kernel.Metadata,
	now time.Time,
) (*Order, error) {
	o := &Order{
		state:         StatePending,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setProductIDs(productIDs),
		o.setAmount(amount),
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrderData, err)
	}

	o.metadata = metadata.Merge(kernel.Metadata{
		MetaCreatedBy:    createdByOrderService,
		MetaInitialState: string(StatePending),
	})

	o.changes = append(o.changes, Changed{
		OrderID:    o.id,
		Event:      EventOrderCreated,
		To:         StatePending,
		Amount:     o.amount,
		OccurredAt: o.createdAt,
	})

	return o, nil
}

// RestoreOrder rebuilds an order from persistence without recording domain events.
func RestoreOrder(
	id kernel.UUID,
	productIDs []string,
	amount float64,
	state State,
	metadata kernel.Metadata,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		metadata:      metadata.Clone(),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setProductIDs(productIDs),
		o.setAmount(amount),
		state.Validate(),
	); err != nil {
		return nil, err
	}
	o.state = state

	return o, nil
}

// Validate ensures the Order instance was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ProductIDs returns a copy of the product identifiers.
func (o *Order) ProductIDs() []string {
	out := make([]string, len(o.productIDs))
	copy(out, o.productIDs)
	return out
}

// Amount returns the order amount before taxes.
func (o *Order) Amount() float64 {
	return o.amount
}

// State returns the current lifecycle state.
func (o *Order) State() State {
	return o.state
}

// Metadata returns a copy of the order metadata.
func (o *Order) Metadata() kernel.Metadata {
	return o.metadata.Clone()
}

// CreatedAt returns the creation time in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last applied transition.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Apply moves the order along event.
//
// The metadata documents are merged in argument order over the current metadata,
// later keys winning, and the last_event, last_transition and processed_at
// bookkeeping keys are written last. An *InvalidTransitionError leaves the order
// untouched.
func (o *Order) Apply(event Event, at time.Time, metadata ...kernel.Metadata) error {
	previous := o.state
	next, err := previous.Next(event)
	if err != nil {
		return err
	}

	at = at.UTC()
	updated := o.metadata.Merge(metadata...)
	updated[MetaLastEvent] = string(event)
	updated[MetaLastTransition] = fmt.Sprintf("%s -> %s", previous, next)
	updated[MetaProcessedAt] = at.Format(time.RFC3339Nano)

	o.state = next
	o.metadata = updated
	o.updatedAt = at
	o.changes = append(o.changes, Changed{
		OrderID:    o.id,
		Event:      event,
		From:       previous,
		To:         next,
		Amount:     o.amount,
		OccurredAt: at,
	})

	return nil
}

// PullChanges returns the pending domain events and forgets them.
func (o *Order) PullChanges() []Changed {
	changes := o.changes
	o.changes = nil
	return changes
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProductIDs(productIDs []string) error {
	if len(productIDs) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("product_ids", errors.New("product IDs cannot be empty"))
	}
	for i, productID := range productIDs {
		if strings.TrimSpace(productID) == "" {
			return errs.NewValueIsInvalidErrorWithCause("product_ids", fmt.Errorf("product ID at index %d is blank", i))
		}
	}
	o.productIDs = make([]string, len(productIDs))
	copy(o.productIDs, productIDs)
	return nil
}

func (o *Order) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%v is not greater than 0", amount))
	}
	o.amount = amount
	return nil
}
