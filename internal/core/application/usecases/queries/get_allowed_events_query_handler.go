package queries

import (
	"context"
	"slices"

	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
)

// GetAllowedEventsQueryHandler applies the event filters to an order's state.
type GetAllowedEventsQueryHandler struct {
	orders    OrderReader
	evaluator *rules.Evaluator
}

func NewGetAllowedEventsQueryHandler(orders OrderReader, evaluator *rules.Evaluator) GetAllowedEventsQueryHandler {
	return GetAllowedEventsQueryHandler{orders: orders, evaluator: evaluator}
}

func (h GetAllowedEventsQueryHandler) Handle(ctx context.Context, query GetAllowedEventsQuery) (AllowedEventsView, error) {
	if err := query.Validate(); err != nil {
		return AllowedEventsView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return AllowedEventsView{}, err
	}

	base := o.State().AllowedEvents()
	allowed := h.evaluator.FilterAvailableEvents(base, rules.Context{Order: o, UserContext: query.UserContext()})

	removed := make([]order.Event, 0)
	for _, event := range base {
		if !slices.Contains(allowed, event) {
			removed = append(removed, event)
		}
	}

	return AllowedEventsView{
		OrderID: o.ID(),
		State:   o.State(),
		Amount:  o.Amount(),
		Allowed: allowed,
		Base:    base,
		Removed: removed,
	}, nil
}
