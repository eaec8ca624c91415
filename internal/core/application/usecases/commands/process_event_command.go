package commands

import (
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/pkg/guard"
)

var ErrProcessEventCommandIsNotConstructed = errors.New(
	"ProcessEventCommand must be created via NewProcessEventCommand constructor",
)

// ProcessEventCommand asks to move an order along a domain event.
//
// Metadata is the caller's event metadata, merged into the order. UserContext
// describes the request (country, user) and is only read by rules.
type ProcessEventCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	event       order.Event
	metadata    kernel.Metadata
	userContext kernel.Metadata

	guard guard.ConstructorGuard
}

// NewProcessEventCommand validates the order id and the event name.
func NewProcessEventCommand(
	orderID kernel.UUID,
	event order.Event,
	metadata kernel.Metadata,
	userContext kernel.Metadata,
) (ProcessEventCommand, error) {
	if err := errors.Join(orderID.Validate(), event.Validate()); err != nil {
		return ProcessEventCommand{}, err
	}

	return ProcessEventCommand{
		orderID:     orderID,
		event:       event,
		metadata:    metadata.Clone(),
		userContext: userContext.Clone(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessEventCommand) Validate() error {
	return c.guard.Validate(ErrProcessEventCommandIsNotConstructed)
}

func (c ProcessEventCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ProcessEventCommand) Event() order.Event {
	return c.event
}

func (c ProcessEventCommand) Metadata() kernel.Metadata {
	return c.metadata
}

func (c ProcessEventCommand) UserContext() kernel.Metadata {
	return c.userContext
}
