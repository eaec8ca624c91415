package queries

import (
	"context"
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the event log of one order, oldest first.
type GetOrderHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderHistoryQueryHandler struct {
	orders OrderReader
	events EventReader
}

func NewGetOrderHistoryQueryHandler(orders OrderReader, events EventReader) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{orders: orders, events: events}
}

// Handle returns an errs.ObjectNotFoundError when the order does not exist, so
// that an unknown order is told apart from an order without history.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]order.EventRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.orders.Get(ctx, query.OrderID()); err != nil {
		return nil, err
	}
	return h.events.GetByOrderID(ctx, query.OrderID())
}
