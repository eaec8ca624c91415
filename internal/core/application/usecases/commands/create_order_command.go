package commands

import (
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new order in the pending state.
// Product and amount validation happens in the order aggregate so that every
// creation path reports order.ErrInvalidOrderData.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), []string{"sku-1"}, 15, nil)
//	if err != nil {
//	    return err
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	productIDs []string
	amount     float64
	metadata   kernel.Metadata

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	productIDs []string,
	amount float64,
	metadata kernel.Metadata,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:    orderID,
		productIDs: productIDs,
		amount:     amount,
		metadata:   metadata.Clone(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) ProductIDs() []string {
	return c.productIDs
}

func (c CreateOrderCommand) Amount() float64 {
	return c.amount
}

func (c CreateOrderCommand) Metadata() kernel.Metadata {
	return c.metadata
}
