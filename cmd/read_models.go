package cmd

import (
	"context"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/core/ports"
)

// The read views below open a fresh unit of work per call, so concurrent
// query handlers never share one.

type orderReads struct {
	uows ports.UnitOfWorkFactory
}

func (r orderReads) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.uows.Create().OrderRepository().Get(ctx, id)
}

func (r orderReads) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.uows.Create().OrderRepository().GetAll(ctx)
}

type eventReads struct {
	uows ports.UnitOfWorkFactory
}

func (r eventReads) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]order.EventRecord, error) {
	return r.uows.Create().EventRepository().GetByOrderID(ctx, orderID)
}

type ticketReads struct {
	uows ports.UnitOfWorkFactory
}

func (r ticketReads) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	return r.uows.Create().TicketRepository().Get(ctx, id)
}

func (r ticketReads) GetAll(ctx context.Context) ([]*ticket.Ticket, error) {
	return r.uows.Create().TicketRepository().GetAll(ctx)
}

func (r ticketReads) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*ticket.Ticket, error) {
	return r.uows.Create().TicketRepository().GetByOrderID(ctx, orderID)
}

func (r ticketReads) StatsByStatus(ctx context.Context) ([]ports.TicketStatusStats, error) {
	return r.uows.Create().TicketRepository().StatsByStatus(ctx)
}
