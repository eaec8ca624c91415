package queries

import (
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order together with its rule context: the events
// the rules allow next, the enrichment data and the applicable rules.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID, kernel.Metadata{"country_code": "US"})
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(view.Order.State(), view.AllowedEvents, view.Enrichment["tax_amount"])
type GetOrderQuery struct {
	orderID     kernel.UUID
	userContext kernel.Metadata

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates the query. userContext may be nil.
func NewGetOrderQuery(orderID kernel.UUID, userContext kernel.Metadata) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID:     orderID,
		userContext: userContext.Clone(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) UserContext() kernel.Metadata {
	return q.userContext
}

// OrderView is an order seen through the rule engine.
type OrderView struct {
	Order *order.Order

	// AllowedEvents are the state's allowed events after every event filter.
	AllowedEvents []order.Event

	// EventsFiltered counts the events removed by filters.
	EventsFiltered int

	// Enrichment is the merged output of the enrichment rules.
	Enrichment kernel.Metadata

	// ApplicableRules lists the ids of the enabled rules that apply to the order.
	ApplicableRules []string

	RequiresManualReview bool
}
