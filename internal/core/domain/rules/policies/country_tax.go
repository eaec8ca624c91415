package policies

import (
	"fmt"
	"math"
	"strings"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/rules"
)

// Tax metadata keys.
const (
	MetaCountryCode        = "country_code"
	MetaTaxRate            = "tax_rate"
	MetaTaxName            = "tax_name"
	MetaTaxAmount          = "tax_amount"
	MetaBaseAmount         = "base_amount"
	MetaTotalAmountWithTax = "total_amount_with_tax"
	MetaTaxAppliedByRule   = "tax_applied_by_rule"
)

type taxRate struct {
	rate float64
	name string
}

var taxRates = map[string]taxRate{
	"US": {0.08, "Sales Tax"},
	"CA": {0.13, "HST"},
	"MX": {0.16, "IVA"},
	"ES": {0.21, "IVA"},
	"FR": {0.20, "TVA"},
	"DE": {0.19, "MwSt"},
	"BR": {0.17, "ICMS"},
	"AR": {0.21, "IVA"},
	"CO": {0.19, "IVA"},
}

// CountryTax computes the sales tax of the resolved country.
type CountryTax struct {
	*rules.Base
}

func NewCountryTax() *CountryTax {
	return &CountryTax{
		Base: rules.NewBase(CountryTaxID, "Apply country-specific tax rates to orders",
			rules.KindEnrichment, rules.PriorityLow, true),
	}
}

func (r *CountryTax) AppliesTo(ctx rules.Context) bool {
	_, _, ok := r.lookup(ctx)
	return ok
}

func (r *CountryTax) Execute(ctx rules.Context) (rules.Result, error) {
	country, tax, ok := r.lookup(ctx)
	if !ok {
		return rules.Failed("no tax rate for order country"), nil
	}

	base := ctx.Amount()
	taxAmount := base * tax.rate

	return rules.Result{
		Success: true,
		Actions: []string{fmt.Sprintf("Applied %s (%.1f%%) for %s", tax.name, tax.rate*100, country)},
		MetadataUpdates: kernel.Metadata{
			MetaCountryCode:        country,
			MetaTaxRate:            tax.rate,
			MetaTaxName:            tax.name,
			MetaTaxAmount:          roundCents(taxAmount),
			MetaBaseAmount:         base,
			MetaTotalAmountWithTax: roundCents(base + taxAmount),
			MetaTaxAppliedByRule:   r.ID(),
		},
	}, nil
}

func (r *CountryTax) lookup(ctx rules.Context) (string, taxRate, bool) {
	code, ok := ctx.CountryCode()
	if !ok {
		return "", taxRate{}, false
	}
	code = strings.ToUpper(code)
	tax, ok := taxRates[code]
	return code, tax, ok
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
