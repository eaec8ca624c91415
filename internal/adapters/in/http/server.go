package http

import (
	"log/slog"
	"net/http"

	"ordermanager/internal/core/application/usecases/commands"
	"ordermanager/internal/core/application/usecases/queries"
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder            commands.CreateOrderCommandHandler
	ProcessEvent           commands.ProcessEventCommandHandler
	UpdateTicketStatus     commands.UpdateTicketStatusCommandHandler
	ToggleRule             commands.ToggleRuleCommandHandler
	SetSmallOrderThreshold commands.SetSmallOrderThresholdCommandHandler

	GetOrder         queries.GetOrderQueryHandler
	GetAllowedEvents queries.GetAllowedEventsQueryHandler
	ListOrders       queries.ListOrdersQueryHandler
	GetOrderHistory  queries.GetOrderHistoryQueryHandler
	ListTickets      queries.ListTicketsQueryHandler
	GetTicket        queries.GetTicketQueryHandler
	TicketsSummary   queries.GetTicketsSummaryQueryHandler
	ListRules        queries.ListRulesQueryHandler
	SimulateRules    queries.SimulateRulesQueryHandler
	PreviewOrder     queries.PreviewOrderCreationQueryHandler
}

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http_server")}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = presentOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders. The draft runs through the
// validation rules before it is stored.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userContext, metadata := creationContext(ctx, body)
	preview, err := s.h.PreviewOrder.Handle(ctx.Request().Context(),
		queries.NewPreviewOrderCreationQuery(body.ProductIds, body.Amount, metadata, userContext))
	if err != nil {
		return s.fail(ctx, err, "Invalid order data")
	}
	if !preview.ValidationPassed {
		return badRequest(ctx, "Validation failed: "+preview.ValidationError)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.ProductIds, body.Amount, metadata)
	if err != nil {
		return s.fail(ctx, err, "Invalid order data")
	}

	created, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, presentOrderDetails(s.h.GetOrder.Describe(created, userContext)))
}

// PreviewOrder handles POST /api/v1/orders/preview.
func (s *Server) PreviewOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userContext, metadata := creationContext(ctx, body)
	preview, err := s.h.PreviewOrder.Handle(ctx.Request().Context(),
		queries.NewPreviewOrderCreationQuery(body.ProductIds, body.Amount, metadata, userContext))
	if err != nil {
		return s.fail(ctx, err, "Invalid order data")
	}

	return ctx.JSON(http.StatusOK, presentPreview(preview))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}
	query, err := queries.NewGetOrderQuery(id, userContextOf(ctx))
	if err != nil {
		return s.fail(ctx, err, "Invalid order ID")
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, presentOrderDetails(view))
}

// ProcessOrderEvent handles POST /api/v1/orders/{orderId}/events.
func (s *Server) ProcessOrderEvent(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.OrderEventRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}
	event, err := order.ParseEvent(body.Event)
	if err != nil {
		return s.fail(ctx, err, "Invalid event")
	}
	userContext := userContextOf(ctx)
	cmd, err := commands.NewProcessEventCommand(id, event, metadataOf(body.Metadata), userContext)
	if err != nil {
		return s.fail(ctx, err, "Invalid event")
	}

	res, err := s.h.ProcessEvent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to process event")
	}

	ticketIDs := make([]openapi_types.UUID, len(res.TicketIDs))
	for i, tid := range res.TicketIDs {
		ticketIDs[i] = tid.Bytes()
	}
	view := s.h.GetOrder.Describe(res.Order, userContext)
	return ctx.JSON(http.StatusOK, servers.ProcessEventResponse{
		Order:         presentOrder(res.Order),
		PreviousState: string(res.PreviousState),
		AppliedRules:  nonNil(res.AppliedRules),
		Actions:       nonNil(res.Actions),
		TicketIds:     ticketIDs,
		AllowedEvents: eventNames(view.AllowedEvents),
		Enrichment:    presentMetadata(view.Enrichment),
	})
}

// GetAllowedEvents handles GET /api/v1/orders/{orderId}/allowed-events.
func (s *Server) GetAllowedEvents(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}
	query, err := queries.NewGetAllowedEventsQuery(id, userContextOf(ctx))
	if err != nil {
		return s.fail(ctx, err, "Invalid order ID")
	}

	view, err := s.h.GetAllowedEvents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve allowed events")
	}

	return ctx.JSON(http.StatusOK, servers.AllowedEvents{
		OrderId:       view.OrderID.Bytes(),
		State:         string(view.State),
		Amount:        view.Amount,
		AllowedEvents: eventNames(view.Allowed),
		BaseEvents:    eventNames(view.Base),
		RemovedEvents: eventNames(view.Removed),
	})
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}
	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid order ID")
	}

	records, err := s.h.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order history")
	}

	response := make([]servers.EventRecord, len(records))
	for i, r := range records {
		response[i] = presentEventRecord(r)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListOrderTickets handles GET /api/v1/orders/{orderId}/tickets.
func (s *Server) ListOrderTickets(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}
	query, err := queries.NewListOrderTicketsQuery(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid order ID")
	}
	return s.listTickets(ctx, query)
}

// SimulateOrderRules handles GET /api/v1/orders/{orderId}/simulation.
func (s *Server) SimulateOrderRules(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}
	query, err := queries.NewSimulateRulesQuery(id, userContextOf(ctx))
	if err != nil {
		return s.fail(ctx, err, "Invalid order ID")
	}

	sim, err := s.h.SimulateRules.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to simulate rules")
	}

	return ctx.JSON(http.StatusOK, presentSimulation(sim))
}

// ListTickets handles GET /api/v1/support/tickets.
func (s *Server) ListTickets(ctx echo.Context) error {
	return s.listTickets(ctx, queries.NewListTicketsQuery())
}

func (s *Server) listTickets(ctx echo.Context, query queries.ListTicketsQuery) error {
	tickets, err := s.h.ListTickets.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve tickets")
	}

	response := make([]servers.Ticket, len(tickets))
	for i, t := range tickets {
		response[i] = presentTicket(t)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetTicketsSummary handles GET /api/v1/support/tickets/summary.
func (s *Server) GetTicketsSummary(ctx echo.Context) error {
	summary, err := s.h.TicketsSummary.Handle(ctx.Request().Context(), queries.NewGetTicketsSummaryQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to summarize tickets")
	}

	byStatus := make([]servers.TicketStatusStats, len(summary.ByStatus))
	for i, st := range summary.ByStatus {
		byStatus[i] = servers.TicketStatusStats{
			Status:        servers.TicketStatus(st.Status),
			Count:         st.Count,
			AverageAmount: st.AvgAmount,
		}
	}
	return ctx.JSON(http.StatusOK, servers.TicketsSummary{Total: summary.Total, ByStatus: byStatus})
}

// GetTicket handles GET /api/v1/support/tickets/{ticketId}.
func (s *Server) GetTicket(ctx echo.Context, ticketId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(ticketId[:])
	if err != nil {
		return badRequest(ctx, "Invalid ticket ID")
	}
	query, err := queries.NewGetTicketQuery(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid ticket ID")
	}

	t, err := s.h.GetTicket.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve ticket")
	}
	return ctx.JSON(http.StatusOK, presentTicket(t))
}

// UpdateTicketStatus handles PATCH /api/v1/support/tickets/{ticketId}/status.
func (s *Server) UpdateTicketStatus(ctx echo.Context, ticketId openapi_types.UUID) error {
	var body servers.TicketStatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(ticketId[:])
	if err != nil {
		return badRequest(ctx, "Invalid ticket ID")
	}
	cmd, err := commands.NewUpdateTicketStatusCommand(id, ticket.Status(body.Status), metadataOf(body.Metadata))
	if err != nil {
		return s.fail(ctx, err, "Invalid ticket status")
	}

	t, err := s.h.UpdateTicketStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update ticket")
	}
	return ctx.JSON(http.StatusOK, presentTicket(t))
}

// ListRules handles GET /api/v1/admin/rules.
func (s *Server) ListRules(ctx echo.Context) error {
	view, err := s.h.ListRules.Handle(ctx.Request().Context(), queries.NewListRulesQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to list rules")
	}

	response := servers.RulesList{
		Rules:   presentRules(view.Rules),
		Total:   view.Total,
		Enabled: view.Enabled,
		ByKind:  make(map[string]int, len(view.ByKind)),
	}
	for kind, n := range view.ByKind {
		response.ByKind[string(kind)] = n
	}
	return ctx.JSON(http.StatusOK, response)
}

// ToggleRule handles POST /api/v1/admin/rules/{ruleId}/toggle.
func (s *Server) ToggleRule(ctx echo.Context, ruleId string, params servers.ToggleRuleParams) error {
	cmd, err := commands.NewToggleRuleCommand(ruleId, params.Enable)
	if err != nil {
		return s.fail(ctx, err, "Invalid rule ID")
	}

	info, err := s.h.ToggleRule.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to toggle rule")
	}
	return ctx.JSON(http.StatusOK, presentRule(info))
}

// SetSmallOrderThreshold handles POST /api/v1/admin/rules/small-order-threshold.
func (s *Server) SetSmallOrderThreshold(ctx echo.Context, params servers.SetSmallOrderThresholdParams) error {
	cmd, err := commands.NewSetSmallOrderThresholdCommand(params.Value)
	if err != nil {
		return s.fail(ctx, err, "Invalid threshold")
	}

	description, err := s.h.SetSmallOrderThreshold.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update threshold")
	}
	return ctx.JSON(http.StatusOK, servers.ThresholdUpdate{Threshold: cmd.Threshold(), Description: description})
}
