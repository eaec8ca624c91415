// Package queries contains the read operations of the order service.
// Query handlers never change state: they read through the repository
// contracts and run the side-effect-free pipelines of the rule engine.
package queries

import (
	"context"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/core/ports"
)

// Read-side views of the repositories. The ports repositories satisfy them.
type (
	OrderReader interface {
		Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
		GetAll(ctx context.Context) ([]*order.Order, error)
	}

	EventReader interface {
		GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]order.EventRecord, error)
	}

	TicketReader interface {
		Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error)
		GetAll(ctx context.Context) ([]*ticket.Ticket, error)
		GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*ticket.Ticket, error)
		StatsByStatus(ctx context.Context) ([]ports.TicketStatusStats, error)
	}
)
