package commands

import (
	"context"
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CreateOrderCommandHandler creates pending orders and logs their creation.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, time.Now)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), []string{"sku-1"}, 15, nil)
//
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidOrderData) {
//	    // reject the request
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) CreateOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle persists the new order and its creation log entry in one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (o *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "CreateOrder",
		trace.WithAttributes(attribute.String("order.id", cmd.OrderID().String())))
	defer func() { finishSpan(span, err) }()

	now := h.now()
	o, err = order.NewOrder(cmd.OrderID(), cmd.ProductIDs(), cmd.Amount(), cmd.Metadata(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	record := order.NewEventRecord(o.ID(), order.EventOrderCreated, order.StatePending, order.StatePending,
		kernel.Metadata{"action": "order_created", "amount": o.Amount()}, now)
	if err = uow.EventRepository().Append(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
