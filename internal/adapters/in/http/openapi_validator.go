package http

import (
	"errors"
	"net/http"
	"strings"

	"ordermanager/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// openAPIValidator checks requests against the operations of doc. It runs
// after routing and looks operations up by the matched echo route, so it only
// sees requests for documented routes.
func openAPIValidator(doc *openapi3.T) echo.MiddlewareFunc {
	operations := make(map[string]*routers.Route)
	for path, item := range doc.Paths.Map() {
		echoPath := strings.NewReplacer("{", ":", "}", "").Replace(path)
		for method, op := range item.Operations() {
			operations[method+" "+echoPath] = &routers.Route{
				Spec:      doc,
				Path:      path,
				PathItem:  item,
				Method:    method,
				Operation: op,
			}
		}
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			route, ok := operations[ctx.Request().Method+" "+ctx.Path()]
			if !ok {
				return next(ctx)
			}

			pathParams := make(map[string]string, len(ctx.ParamNames()))
			for i, name := range ctx.ParamNames() {
				pathParams[name] = ctx.ParamValues()[i]
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    ctx.Request(),
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(ctx.Request().Context(), input); err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}
			return next(ctx)
		}
	}
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return "Invalid parameter " + reqErr.Parameter.Name + ": " + reqErr.Reason
		}
		if reqErr.RequestBody != nil {
			return "Invalid request body: " + reqErr.Error()
		}
	}
	return err.Error()
}
