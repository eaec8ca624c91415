package servers

import (
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	assert.Equal(t, "Order Manager API", doc.Info.Title)
	assert.NotNil(t, doc.Paths.Find("/api/v1/orders/{orderId}/events"))
	assert.NotNil(t, doc.Components.Schemas["Ticket"])
}

func TestRegisterHandlersMatchesDocument(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	var documented []string
	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			documented = append(documented, method+" "+toEchoPath(path))
		}
	}

	e := echo.New()
	RegisterHandlers(e, nil)
	var registered []string
	for _, r := range e.Routes() {
		if r.Method == http.MethodGet || r.Method == http.MethodPost || r.Method == http.MethodPatch {
			registered = append(registered, r.Method+" "+r.Path)
		}
	}

	sort.Strings(documented)
	sort.Strings(registered)
	assert.Equal(t, documented, registered)
}

func toEchoPath(path string) string {
	return strings.NewReplacer("{", ":", "}", "").Replace(path)
}
