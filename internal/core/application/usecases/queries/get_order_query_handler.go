package queries

import (
	"context"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/core/domain/rules/policies"
)

// GetOrderQueryHandler builds order views.
type GetOrderQueryHandler struct {
	orders    OrderReader
	evaluator *rules.Evaluator
}

func NewGetOrderQueryHandler(orders OrderReader, evaluator *rules.Evaluator) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, evaluator: evaluator}
}

// Handle returns an errs.ObjectNotFoundError for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	return h.Describe(o, query.UserContext()), nil
}

// Describe runs the event filters and the enrichment rules over an order that
// is already loaded, such as one a command has just written.
func (h GetOrderQueryHandler) Describe(o *order.Order, userContext kernel.Metadata) OrderView {
	rc := rules.Context{Order: o, UserContext: userContext}
	base := o.State().AllowedEvents()
	allowed := h.evaluator.FilterAvailableEvents(base, rc)
	enrichment := h.evaluator.EnrichOrderData(rc)

	applicable := h.evaluator.Registry().Applicable(rc)
	ids := make([]string, 0, len(applicable))
	for _, rule := range applicable {
		ids = append(ids, rule.ID())
	}

	return OrderView{
		Order:                o,
		AllowedEvents:        allowed,
		EventsFiltered:       len(base) - len(allowed),
		Enrichment:           enrichment,
		ApplicableRules:      ids,
		RequiresManualReview: requiresManualReview(o, enrichment),
	}
}

func requiresManualReview(o *order.Order, enrichment map[string]any) bool {
	if flag, ok := enrichment[policies.MetaRequiresManualReview].(bool); ok {
		return flag
	}
	flag, _ := o.Metadata()[policies.MetaRequiresManualReview].(bool)
	return flag
}
