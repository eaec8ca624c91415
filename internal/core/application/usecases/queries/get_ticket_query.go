package queries

import (
	"context"
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/pkg/guard"
)

var ErrGetTicketQueryIsNotConstructed = errors.New(
	"GetTicketQuery must be created via NewGetTicketQuery constructor",
)

type GetTicketQuery struct {
	ticketID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTicketQuery(ticketID kernel.UUID) (GetTicketQuery, error) {
	if err := ticketID.Validate(); err != nil {
		return GetTicketQuery{}, err
	}
	return GetTicketQuery{ticketID: ticketID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTicketQuery) Validate() error {
	return q.guard.Validate(ErrGetTicketQueryIsNotConstructed)
}

func (q GetTicketQuery) TicketID() kernel.UUID {
	return q.ticketID
}

type GetTicketQueryHandler struct {
	tickets TicketReader
}

func NewGetTicketQueryHandler(tickets TicketReader) GetTicketQueryHandler {
	return GetTicketQueryHandler{tickets: tickets}
}

// Handle returns an errs.ObjectNotFoundError for an unknown ticket.
func (h GetTicketQueryHandler) Handle(ctx context.Context, query GetTicketQuery) (*ticket.Ticket, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.tickets.Get(ctx, query.TicketID())
}
