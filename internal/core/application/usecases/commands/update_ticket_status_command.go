package commands

import (
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/pkg/guard"
)

var ErrUpdateTicketStatusCommandIsNotConstructed = errors.New(
	"UpdateTicketStatusCommand must be created via NewUpdateTicketStatusCommand constructor",
)

// UpdateTicketStatusCommand moves a support ticket to another status.
type UpdateTicketStatusCommand struct { //nolint:recvcheck //using for validation
	ticketID kernel.UUID
	status   ticket.Status
	metadata kernel.Metadata

	guard guard.ConstructorGuard
}

// NewUpdateTicketStatusCommand validates the ticket id and the status.
func NewUpdateTicketStatusCommand(
	ticketID kernel.UUID,
	status ticket.Status,
	metadata kernel.Metadata,
) (UpdateTicketStatusCommand, error) {
	if err := errors.Join(ticketID.Validate(), status.Validate()); err != nil {
		return UpdateTicketStatusCommand{}, err
	}

	return UpdateTicketStatusCommand{
		ticketID: ticketID,
		status:   status,
		metadata: metadata.Clone(),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTicketStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTicketStatusCommandIsNotConstructed)
}

func (c UpdateTicketStatusCommand) TicketID() kernel.UUID {
	return c.ticketID
}

func (c UpdateTicketStatusCommand) Status() ticket.Status {
	return c.status
}

func (c UpdateTicketStatusCommand) Metadata() kernel.Metadata {
	return c.metadata
}
