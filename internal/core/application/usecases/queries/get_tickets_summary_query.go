package queries

import (
	"context"
	"errors"

	"ordermanager/internal/core/ports"
	"ordermanager/internal/pkg/guard"
)

var ErrGetTicketsSummaryQueryIsNotConstructed = errors.New(
	"GetTicketsSummaryQuery must be created via NewGetTicketsSummaryQuery constructor",
)

// GetTicketsSummaryQuery aggregates support tickets by status.
type GetTicketsSummaryQuery struct {
	guard guard.ConstructorGuard
}

func NewGetTicketsSummaryQuery() GetTicketsSummaryQuery {
	return GetTicketsSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetTicketsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetTicketsSummaryQueryIsNotConstructed)
}

// TicketsSummary holds the per-status statistics and their total.
type TicketsSummary struct {
	Total    int64
	ByStatus []ports.TicketStatusStats
}

type GetTicketsSummaryQueryHandler struct {
	tickets TicketReader
}

func NewGetTicketsSummaryQueryHandler(tickets TicketReader) GetTicketsSummaryQueryHandler {
	return GetTicketsSummaryQueryHandler{tickets: tickets}
}

func (h GetTicketsSummaryQueryHandler) Handle(ctx context.Context, query GetTicketsSummaryQuery) (TicketsSummary, error) {
	if err := query.Validate(); err != nil {
		return TicketsSummary{}, err
	}

	stats, err := h.tickets.StatsByStatus(ctx)
	if err != nil {
		return TicketsSummary{}, err
	}

	summary := TicketsSummary{ByStatus: stats}
	for _, s := range stats {
		summary.Total += s.Count
	}
	return summary, nil
}
