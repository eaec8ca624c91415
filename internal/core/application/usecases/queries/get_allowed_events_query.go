package queries

import (
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/pkg/guard"
)

var ErrGetAllowedEventsQueryIsNotConstructed = errors.New(
	"GetAllowedEventsQuery must be created via NewGetAllowedEventsQuery constructor",
)

// GetAllowedEventsQuery lists the events an order may receive next.
type GetAllowedEventsQuery struct {
	orderID     kernel.UUID
	userContext kernel.Metadata

	guard guard.ConstructorGuard
}

func NewGetAllowedEventsQuery(orderID kernel.UUID, userContext kernel.Metadata) (GetAllowedEventsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetAllowedEventsQuery{}, err
	}
	return GetAllowedEventsQuery{
		orderID:     orderID,
		userContext: userContext.Clone(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllowedEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllowedEventsQueryIsNotConstructed)
}

func (q GetAllowedEventsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetAllowedEventsQuery) UserContext() kernel.Metadata {
	return q.userContext
}

// AllowedEventsView compares the state machine's events with the ones left
// after the event filters ran.
type AllowedEventsView struct {
	OrderID kernel.UUID
	State   order.State
	Amount  float64
	Allowed []order.Event
	Base    []order.Event
	Removed []order.Event
}
