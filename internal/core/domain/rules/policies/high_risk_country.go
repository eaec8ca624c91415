package policies

import (
	"slices"
	"strings"

	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
)

var highRiskCountries = map[string]struct{}{
	"VE": {},
	"AF": {},
	"IQ": {},
	"SY": {},
	"KP": {},
}

// HighRiskCountry forces biometric verification for pending orders from a
// high-risk country, whatever the amount.
type HighRiskCountry struct {
	rules.FilterBase
}

func NewHighRiskCountry() *HighRiskCountry {
	return &HighRiskCountry{
		FilterBase: rules.NewFilterBase(HighRiskCountryID, "High-risk countries require additional verification",
			rules.PriorityHigh, true),
	}
}

func (r *HighRiskCountry) AppliesTo(ctx rules.Context) bool {
	code, ok := ctx.CountryCode()
	if !ok {
		return false
	}
	_, risky := highRiskCountries[strings.ToUpper(code)]
	return risky && ctx.State() == order.StatePending
}

func (r *HighRiskCountry) FilterEvents(events []order.Event, _ rules.Context) ([]order.Event, error) {
	if !slices.Contains(events, order.EventPendingBiometricalVerification) {
		events = append(events, order.EventPendingBiometricalVerification)
	}

	return slices.DeleteFunc(events, func(e order.Event) bool {
		return e == order.EventNoVerificationNeeded
	}), nil
}
