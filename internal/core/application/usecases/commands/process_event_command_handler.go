package commands

import (
	"context"
	"log/slog"
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/core/domain/rules"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BusinessRules runs the business logic pipeline of the rule engine.
type BusinessRules interface {
	EvaluateBusinessLogic(ctx rules.Context) rules.BusinessOutcome
}

// ProcessEventResult describes an applied event.
type ProcessEventResult struct {
	Order         *order.Order
	PreviousState order.State
	AppliedRules  []string
	Actions       []string
	TicketIDs     []kernel.UUID
}

// ProcessEventCommandHandler applies domain events to orders.
//
// The transition, the rule metadata and the log entry are written in one
// transaction. Tickets requested by rules are opened after it commits, each in
// its own transaction; a ticket that cannot be opened is logged and skipped.
//
// Example:
//
//	cmd, _ := NewProcessEventCommand(orderID, order.EventPaymentFailed, nil, nil)
//	res, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // reject the request
//	}
//	fmt.Println(res.Order.State(), res.TicketIDs)
type ProcessEventCommandHandler struct {
	uowFactory       OrderUoWFactory
	ticketUoWFactory TicketUoWFactory
	rules            BusinessRules
	now              func() time.Time
	logger           *slog.Logger
}

// NewProcessEventCommandHandler creates the handler.
func NewProcessEventCommandHandler(
	uowFactory OrderUoWFactory,
	ticketUoWFactory TicketUoWFactory,
	businessRules BusinessRules,
	now func() time.Time,
	logger *slog.Logger,
) ProcessEventCommandHandler {
	if now == nil {
		now = time.Now
	}
	return ProcessEventCommandHandler{
		uowFactory:       uowFactory,
		ticketUoWFactory: ticketUoWFactory,
		rules:            businessRules,
		now:              now,
		logger:           logger.With("component", "process_event_handler"),
	}
}

// Handle applies the event. It fails with an errs.ObjectNotFoundError for an
// unknown order and with an *order.InvalidTransitionError for an illegal event.
func (h ProcessEventCommandHandler) Handle(ctx context.Context, cmd ProcessEventCommand) (res ProcessEventResult, err error) {
	if err = cmd.Validate(); err != nil {
		return ProcessEventResult{}, err
	}

	ctx, span := tracer.Start(ctx, "ProcessEvent", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.event", cmd.Event().String()),
	))
	defer func() { finishSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ProcessEventResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return ProcessEventResult{}, err
	}

	previous := o.State()
	if _, err = previous.Next(cmd.Event()); err != nil {
		return ProcessEventResult{}, err
	}

	outcome := h.rules.EvaluateBusinessLogic(rules.Context{
		Order:       o,
		Event:       cmd.Event(),
		Metadata:    cmd.Metadata(),
		UserContext: cmd.UserContext(),
	})

	now := h.now()
	if err = o.Apply(cmd.Event(), now, outcome.MetadataUpdates, cmd.Metadata()); err != nil {
		return ProcessEventResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return ProcessEventResult{}, err
	}

	recordMeta := cmd.Metadata().Clone()
	if len(outcome.ExecutedRules) > 0 {
		recordMeta["rules_applied"] = outcome.ExecutedRules
	}
	record := order.NewEventRecord(o.ID(), cmd.Event(), previous, o.State(), recordMeta, now)
	if err = uow.EventRepository().Append(ctx, record); err != nil {
		return ProcessEventResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ProcessEventResult{}, err
	}

	span.SetAttributes(attribute.String("order.state", o.State().String()))

	return ProcessEventResult{
		Order:         o,
		PreviousState: previous,
		AppliedRules:  outcome.ExecutedRules,
		Actions:       outcome.Actions,
		TicketIDs:     h.openTickets(ctx, o.ID(), outcome.TicketRequests, now),
	}, nil
}

func (h ProcessEventCommandHandler) openTickets(
	ctx context.Context,
	orderID kernel.UUID,
	requests []rules.TicketRequest,
	now time.Time,
) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(requests))
	for _, req := range requests {
		id, err := h.openTicket(ctx, orderID, req, now)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to create support ticket",
				"order_id", orderID.String(), "reason", req.Reason, "error", err)
			continue
		}
		h.logger.InfoContext(ctx, "Support ticket created by business rule",
			"order_id", orderID.String(), "ticket_id", id.String())
		ids = append(ids, id)
	}
	return ids
}

func (h ProcessEventCommandHandler) openTicket(
	ctx context.Context,
	orderID kernel.UUID,
	req rules.TicketRequest,
	now time.Time,
) (kernel.UUID, error) {
	t, err := ticket.NewTicket(kernel.NewUUID(), orderID, req.Reason, req.Amount, req.Metadata, now)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.ticketUoWFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TicketRepository().Add(ctx, t); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return t.ID(), nil
}
