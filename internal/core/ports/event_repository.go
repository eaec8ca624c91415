package ports

import (
	"context"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
)

// EventRepository is the append-only audit log of order events.
type EventRepository interface {
	// Append stores one log entry.
	Append(ctx context.Context, record order.EventRecord) error

	// GetByOrderID returns the entries of one order, oldest first.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]order.EventRecord, error)
}
