// Package servers holds the HTTP contract of the order manager: the models,
// the ServerInterface implemented by the inbound adapter, the echo routing
// wrapper that binds path and query parameters, and the embedded OpenAPI
// document.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (POST /api/v1/orders/preview)
	PreviewOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/events)
	ProcessOrderEvent(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/orders/{orderId}/allowed-events)
	GetAllowedEvents(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/orders/{orderId}/history)
	GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/orders/{orderId}/tickets)
	ListOrderTickets(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/orders/{orderId}/simulation)
	SimulateOrderRules(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/support/tickets)
	ListTickets(ctx echo.Context) error
	// (GET /api/v1/support/tickets/summary)
	GetTicketsSummary(ctx echo.Context) error
	// (GET /api/v1/support/tickets/{ticketId})
	GetTicket(ctx echo.Context, ticketId openapi_types.UUID) error
	// (PATCH /api/v1/support/tickets/{ticketId}/status)
	UpdateTicketStatus(ctx echo.Context, ticketId openapi_types.UUID) error
	// (GET /api/v1/admin/rules)
	ListRules(ctx echo.Context) error
	// (POST /api/v1/admin/rules/{ruleId}/toggle)
	ToggleRule(ctx echo.Context, ruleId string, params ToggleRuleParams) error
	// (POST /api/v1/admin/rules/small-order-threshold)
	SetSmallOrderThreshold(ctx echo.Context, params SetSmallOrderThresholdParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	return w.Handler.ListOrders(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) PreviewOrder(ctx echo.Context) error {
	return w.Handler.PreviewOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ProcessOrderEvent(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ProcessOrderEvent(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetAllowedEvents(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetAllowedEvents(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrderHistory(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ListOrderTickets(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ListOrderTickets(ctx, orderId)
}

func (w *ServerInterfaceWrapper) SimulateOrderRules(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.SimulateOrderRules(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ListTickets(ctx echo.Context) error {
	return w.Handler.ListTickets(ctx)
}

func (w *ServerInterfaceWrapper) GetTicketsSummary(ctx echo.Context) error {
	return w.Handler.GetTicketsSummary(ctx)
}

func (w *ServerInterfaceWrapper) GetTicket(ctx echo.Context) error {
	ticketId, err := bindUUID(ctx, "ticketId")
	if err != nil {
		return err
	}
	return w.Handler.GetTicket(ctx, ticketId)
}

func (w *ServerInterfaceWrapper) UpdateTicketStatus(ctx echo.Context) error {
	ticketId, err := bindUUID(ctx, "ticketId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateTicketStatus(ctx, ticketId)
}

func (w *ServerInterfaceWrapper) ListRules(ctx echo.Context) error {
	return w.Handler.ListRules(ctx)
}

func (w *ServerInterfaceWrapper) ToggleRule(ctx echo.Context) error {
	var ruleId string
	err := runtime.BindStyledParameterWithOptions("simple", "ruleId", ctx.Param("ruleId"), &ruleId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter ruleId: %s", err))
	}

	var params ToggleRuleParams
	err = runtime.BindQueryParameter("form", true, true, "enable", ctx.QueryParams(), &params.Enable)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter enable: %s", err))
	}

	return w.Handler.ToggleRule(ctx, ruleId, params)
}

func (w *ServerInterfaceWrapper) SetSmallOrderThreshold(ctx echo.Context) error {
	var params SetSmallOrderThresholdParams
	err := runtime.BindQueryParameter("form", true, true, "value", ctx.QueryParams(), &params.Value)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter value: %s", err))
	}

	return w.Handler.SetSmallOrderThreshold(ctx, params)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.POST(baseURL+"/api/v1/orders/preview", wrapper.PreviewOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/events", wrapper.ProcessOrderEvent)
	router.GET(baseURL+"/api/v1/orders/:orderId/allowed-events", wrapper.GetAllowedEvents)
	router.GET(baseURL+"/api/v1/orders/:orderId/history", wrapper.GetOrderHistory)
	router.GET(baseURL+"/api/v1/orders/:orderId/tickets", wrapper.ListOrderTickets)
	router.GET(baseURL+"/api/v1/orders/:orderId/simulation", wrapper.SimulateOrderRules)
	router.GET(baseURL+"/api/v1/support/tickets", wrapper.ListTickets)
	router.GET(baseURL+"/api/v1/support/tickets/summary", wrapper.GetTicketsSummary)
	router.GET(baseURL+"/api/v1/support/tickets/:ticketId", wrapper.GetTicket)
	router.PATCH(baseURL+"/api/v1/support/tickets/:ticketId/status", wrapper.UpdateTicketStatus)
	router.GET(baseURL+"/api/v1/admin/rules", wrapper.ListRules)
	router.POST(baseURL+"/api/v1/admin/rules/:ruleId/toggle", wrapper.ToggleRule)
	router.POST(baseURL+"/api/v1/admin/rules/small-order-threshold", wrapper.SetSmallOrderThreshold)
}

//go:embed openapi.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swaggerDoc  *openapi3.T
	swaggerErr  error
)

// RawSpec returns the OpenAPI document as written.
func RawSpec() []byte {
	return rawSpec
}

// GetSwagger returns the parsed and validated OpenAPI document. The document
// is shared; callers must not modify it.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading OpenAPI document: %w", err)
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("error validating OpenAPI document: %w", err)
			return
		}
		swaggerDoc = doc
	})
	return swaggerDoc, swaggerErr
}
