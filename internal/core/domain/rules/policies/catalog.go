package policies

import (
	"fmt"
	"time"

	"ordermanager/internal/core/domain/rules"
)

// Rule identifiers of the default catalog.
const (
	SmallOrderID             = "small_order_no_verification"
	HighValuePaymentFailedID = "high_value_payment_failed"
	UltraHighValueReviewID   = "ultra_high_value_review"
	CountryTaxID             = "country_tax_calculation"
	HighRiskCountryID        = "high_risk_country_verification"
	ReviewingStateID         = "reviewing_state_integration"
	WeekendOrderID           = "weekend_order_restriction"
)

// Clock returns the current time. Rules that depend on the calendar take one so
// tests can pin the date.
type Clock func() time.Time

// Settings tune the default catalog.
type Settings struct {
	SmallOrderThreshold float64
	WeekendThreshold    float64

	// Enabled overrides the default enabled flag per rule id.
	Enabled map[string]bool
}

// DefaultSettings returns the production defaults.
func DefaultSettings() Settings {
	return Settings{
		SmallOrderThreshold: DefaultSmallOrderThreshold,
		WeekendThreshold:    DefaultWeekendThreshold,
	}
}

// Register adds the default catalog to registry in its canonical order: small
// order, payment failed, ultra high value, country tax, high risk country,
// reviewing state and weekend restriction.
func Register(registry *rules.Registry, settings Settings, clock Clock) error {
	if clock == nil {
		clock = time.Now
	}

	smallOrder, err := NewSmallOrder(settings.SmallOrderThreshold)
	if err != nil {
		return fmt.Errorf("small order rule: %w", err)
	}
	weekend, err := NewWeekendOrder(settings.WeekendThreshold, clock)
	if err != nil {
		return fmt.Errorf("weekend order rule: %w", err)
	}

	catalog := []rules.Rule{
		smallOrder,
		NewHighValuePaymentFailed(),
		NewUltraHighValueReview(),
		NewCountryTax(),
		NewHighRiskCountry(),
		NewReviewingState(),
		weekend,
	}

	known := make(map[string]bool, len(catalog))
	for _, rule := range catalog {
		known[rule.ID()] = true
	}
	for id := range settings.Enabled {
		if !known[id] {
			return fmt.Errorf("unknown rule id in settings: %s", id)
		}
	}

	for _, rule := range catalog {
		if enabled, ok := settings.Enabled[rule.ID()]; ok {
			rule.SetEnabled(enabled)
		}
		registry.Register(rule)
	}
	return nil
}
