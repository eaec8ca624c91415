package commands

import (
	"context"
	"time"

	"ordermanager/internal/core/domain/model/ticket"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UpdateTicketStatusCommandHandler changes the status of support tickets.
type UpdateTicketStatusCommandHandler struct {
	uowFactory TicketUoWFactory
	now        func() time.Time
}

// NewUpdateTicketStatusCommandHandler creates the handler.
func NewUpdateTicketStatusCommandHandler(uowFactory TicketUoWFactory, now func() time.Time) UpdateTicketStatusCommandHandler {
	if now == nil {
		now = time.Now
	}
	return UpdateTicketStatusCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle loads the ticket, updates it and persists it in one transaction.
func (h UpdateTicketStatusCommandHandler) Handle(ctx context.Context, cmd UpdateTicketStatusCommand) (t *ticket.Ticket, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "UpdateTicketStatus", trace.WithAttributes(
		attribute.String("ticket.id", cmd.TicketID().String()),
		attribute.String("ticket.status", cmd.Status().String()),
	))
	defer func() { finishSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TicketRepository()
	t, err = repo.Get(ctx, cmd.TicketID())
	if err != nil {
		return nil, err
	}

	if err = t.UpdateStatus(cmd.Status(), cmd.Metadata(), h.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
