package ticket

import (
	"errors"
	"strings"
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/pkg/errs"
)

// ErrTicketIsNotConstructed is returned when a Ticket instance was not created
// through NewTicket or RestoreTicket.
var ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket constructor")

// Metadata keys written by UpdateStatus.
const (
	MetaPreviousStatus  = "previous_status"
	MetaStatusUpdatedAt = "status_updated_at"
)

// Ticket is a support case attached to an order.
type Ticket struct {
	id        kernel.UUID
	orderID   kernel.UUID
	reason    string
	amount    float64
	status    Status
	metadata  kernel.Metadata
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewTicket opens a ticket for orderID.
func NewTicket(
	id kernel.UUID,
	orderID kernel.UUID,
	reason string,
	amount float64,
	metadata kernel.Metadata,
	now time.Time,
) (*Ticket, error) {
	t := &Ticket{
		id:            id,
		orderID:       orderID,
		reason:        reason,
		amount:        amount,
		status:        StatusOpen,
		metadata:      metadata.Clone(),
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := t.validateFields(); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTicket rebuilds a ticket from persistence.
func RestoreTicket(
	id kernel.UUID,
	orderID kernel.UUID,
	reason string,
	amount float64,
	status Status,
	metadata kernel.Metadata,
	createdAt time.Time,
	updatedAt time.Time,
) (*Ticket, error) {
	t := &Ticket{
		id:            id,
		orderID:       orderID,
		reason:        reason,
		amount:        amount,
		status:        status,
		metadata:      metadata.Clone(),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(t.validateFields(), status.Validate()); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Ticket) validateFields() error {
	var errList []error
	if err := t.id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := t.orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("order_id", err))
	}
	if strings.TrimSpace(t.reason) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("reason"))
	}
	if t.amount < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("amount"))
	}
	return errors.Join(errList...)
}

// Validate ensures the Ticket instance was built by a constructor.
func (t *Ticket) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTicketIsNotConstructed
	}
	return nil
}

func (t *Ticket) ID() kernel.UUID {
	return t.id
}

func (t *Ticket) OrderID() kernel.UUID {
	return t.orderID
}

func (t *Ticket) Reason() string {
	return t.reason
}

func (t *Ticket) Amount() float64 {
	return t.amount
}

func (t *Ticket) Status() Status {
	return t.status
}

// Metadata returns a copy of the ticket metadata.
func (t *Ticket) Metadata() kernel.Metadata {
	return t.metadata.Clone()
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// UpdateStatus sets a new status, merges metadata over the current document and
// records the previous status and the update time.
func (t *Ticket) UpdateStatus(status Status, metadata kernel.Metadata, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	now = now.UTC()
	updated := t.metadata.Merge(metadata)
	updated[MetaPreviousStatus] = string(t.status)
	updated[MetaStatusUpdatedAt] = now.Format(time.RFC3339Nano)

	t.status = status
	t.metadata = updated
	t.updatedAt = now
	return nil
}
