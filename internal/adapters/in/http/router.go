// Package http is the inbound HTTP adapter: an echo server that validates
// requests against the OpenAPI document and maps them onto the use cases.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ordermanager/internal/generated/servers"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var swaggerOnce sync.Once

// NewRouter builds the echo instance serving the API, /health, /openapi.yaml,
// the swagger UI and, when metrics is not nil, /metrics.
func NewRouter(server *Server, metrics http.Handler, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(requestLogger(logger.With("component", "http")))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", servers.RawSpec())
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	api := e.Group("", openAPIValidator(doc))
	servers.RegisterHandlers(api, server)

	return e, nil
}

func registerSwaggerDoc() error {
	var err error
	swaggerOnce.Do(func() {
		doc, loadErr := servers.GetSwagger()
		if loadErr != nil {
			err = loadErr
			return
		}
		raw, marshalErr := json.Marshal(doc)
		if marshalErr != nil {
			err = fmt.Errorf("encode swagger document: %w", marshalErr)
			return
		}
		swag.Register(swag.Name, &swag.Spec{
			InfoInstanceName: swag.Name,
			Title:            doc.Info.Title,
			Version:          doc.Info.Version,
			SwaggerTemplate:  string(raw),
		})
	})
	return err
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.InfoContext(c.Request().Context(), "request",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"duration", time.Since(start))
			return nil
		}
	}
}
