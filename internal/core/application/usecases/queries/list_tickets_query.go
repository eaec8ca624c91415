package queries

import (
	"context"
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/pkg/guard"
)

var ErrListTicketsQueryIsNotConstructed = errors.New(
	"ListTicketsQuery must be created via NewListTicketsQuery or NewListOrderTicketsQuery constructor",
)

// ListTicketsQuery retrieves support tickets, newest first, either all of them
// or those of one order.
type ListTicketsQuery struct {
	orderID  kernel.UUID
	forOrder bool

	guard guard.ConstructorGuard
}

// NewListTicketsQuery lists every ticket.
func NewListTicketsQuery() ListTicketsQuery {
	return ListTicketsQuery{guard: guard.NewConstructorGuard()}
}

// NewListOrderTicketsQuery lists the tickets of one order.
func NewListOrderTicketsQuery(orderID kernel.UUID) (ListTicketsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListTicketsQuery{}, err
	}
	return ListTicketsQuery{orderID: orderID, forOrder: true, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q ListTicketsQuery) Validate() error {
	return q.guard.Validate(ErrListTicketsQueryIsNotConstructed)
}

// OrderID returns the order filter and whether one is set.
func (q ListTicketsQuery) OrderID() (kernel.UUID, bool) {
	return q.orderID, q.forOrder
}

type ListTicketsQueryHandler struct {
	tickets TicketReader
}

func NewListTicketsQueryHandler(tickets TicketReader) ListTicketsQueryHandler {
	return ListTicketsQueryHandler{tickets: tickets}
}

func (h ListTicketsQueryHandler) Handle(ctx context.Context, query ListTicketsQuery) ([]*ticket.Ticket, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if orderID, ok := query.OrderID(); ok {
		return h.tickets.GetByOrderID(ctx, orderID)
	}
	return h.tickets.GetAll(ctx)
}
