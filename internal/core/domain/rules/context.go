package rules

import (
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
)

// Metadata keys read from Context.
const (
	KeyCountryCode = "country_code"
	KeyUserID      = "user_id"
	KeyIPCountry   = "ip_country"
	KeyUserAgent   = "user_agent"
)

// Context is the input of one rule pass. It is built fresh for every pass and
// rules must treat it as read-only.
type Context struct {
	Order *order.Order

	// Event is empty when the pass is not about a specific event.
	Event order.Event

	// Metadata is the caller supplied event metadata.
	Metadata kernel.Metadata

	// UserContext describes the request: country, user and client.
	UserContext kernel.Metadata
}

// HasEvent reports whether the pass concerns a specific event.
func (c Context) HasEvent() bool {
	return c.Event != ""
}

// Amount returns the order amount, or 0 without an order.
func (c Context) Amount() float64 {
	if c.Order == nil {
		return 0
	}
	return c.Order.Amount()
}

// State returns the order state, or an empty state without an order.
func (c Context) State() order.State {
	if c.Order == nil {
		return ""
	}
	return c.Order.State()
}

// CountryCode resolves the country from the user context first and the order
// metadata second.
func (c Context) CountryCode() (string, bool) {
	if code, ok := c.UserContext.String(KeyCountryCode); ok {
		return code, true
	}
	if c.Order != nil {
		return c.Order.Metadata().String(KeyCountryCode)
	}
	return "", false
}
