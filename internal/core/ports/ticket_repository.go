package ports

import (
	"context"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/ticket"
)

// TicketStatusStats aggregates the tickets sharing one status.
type TicketStatusStats struct {
	Status    ticket.Status
	Count     int64
	AvgAmount float64
}

// TicketRepository defines the persistence contract for support tickets.
type TicketRepository interface {
	// Add persists a new ticket.
	Add(ctx context.Context, aggregate *ticket.Ticket) error

	// Update persists the status, metadata and update time of an existing ticket.
	// Returns an errs.ObjectNotFoundError when the ticket does not exist.
	Update(ctx context.Context, aggregate *ticket.Ticket) error

	// Get retrieves a ticket by its identifier.
	// Returns an errs.ObjectNotFoundError on a miss.
	Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error)

	// GetAll retrieves every ticket, newest first.
	GetAll(ctx context.Context) ([]*ticket.Ticket, error)

	// GetByOrderID retrieves the tickets of one order, newest first.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*ticket.Ticket, error)

	// StatsByStatus counts tickets and averages their amount per status,
	// largest group first.
	StatsByStatus(ctx context.Context) ([]TicketStatusStats, error)
}
