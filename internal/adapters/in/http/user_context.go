package http

import (
	"strings"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

const (
	HeaderCountryCode = "X-Country-Code"
	HeaderUserID      = "X-User-ID"
	HeaderIPCountry   = "X-IP-Country"
)

// userContextOf reads the caller description from the request headers.
// Country codes are upper-cased; absent headers are left out.
func userContextOf(ctx echo.Context) kernel.Metadata {
	header := ctx.Request().Header
	uc := kernel.Metadata{}

	if v := strings.TrimSpace(header.Get(HeaderCountryCode)); v != "" {
		uc[rules.KeyCountryCode] = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(header.Get(HeaderUserID)); v != "" {
		uc[rules.KeyUserID] = v
	}
	if v := strings.TrimSpace(header.Get(HeaderIPCountry)); v != "" {
		uc[rules.KeyIPCountry] = strings.ToUpper(v)
	}
	if v := ctx.Request().UserAgent(); v != "" {
		uc[rules.KeyUserAgent] = v
	}

	return uc
}

// creationContext resolves the user context and the initial metadata of a
// draft order. A country_code in the body overrides the header and is copied
// into the order metadata so later requests see it.
func creationContext(ctx echo.Context, body servers.NewOrder) (kernel.Metadata, kernel.Metadata) {
	userContext := userContextOf(ctx)
	if body.CountryCode != nil && *body.CountryCode != "" {
		userContext[rules.KeyCountryCode] = strings.ToUpper(*body.CountryCode)
	}

	metadata := metadataOf(body.Metadata)
	if code, ok := userContext.String(rules.KeyCountryCode); ok {
		metadata[rules.KeyCountryCode] = code
	}
	return userContext, metadata
}
