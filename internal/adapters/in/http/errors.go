package http

import (
	"errors"
	"net/http"

	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/generated/servers"
	"ordermanager/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps a use case error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInvalidOrderData),
		errors.Is(err, rules.ErrValidationFailed),
		errors.Is(err, ticket.ErrInvalidStatus),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error response for err. Client errors carry the error text;
// server errors are logged and answered with fallback.
func (s *Server) fail(ctx echo.Context, err error, fallback string) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), fallback,
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return ctx.JSON(status, servers.Error{Code: status, Message: fallback})
	}
	return ctx.JSON(status, servers.Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}
