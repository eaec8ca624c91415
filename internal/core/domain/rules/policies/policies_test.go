package policies_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/core/domain/rules/policies"
	"ordermanager/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday   = time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)
	saturday = time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCatalog(t *testing.T, now time.Time) *rules.Evaluator {
	t.Helper()
	registry := rules.NewRegistry(discardLogger())
	require.NoError(t, policies.Register(registry, policies.DefaultSettings(), func() time.Time { return now }))
	return rules.NewEvaluator(registry, discardLogger())
}

func orderIn(t *testing.T, state order.State, amount float64, metadata kernel.Metadata) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), []string{"sku-1"}, amount, state, metadata, monday, monday)
	require.NoError(t, err)
	return o
}

func TestRegister(t *testing.T) {
	t.Run("should register the catalog in canonical order", func(t *testing.T) {
		registry := rules.NewRegistry(discardLogger())

		require.NoError(t, policies.Register(registry, policies.DefaultSettings(), nil))

		infos := registry.Infos()
		got := make([]string, 0, len(infos))
		for _, info := range infos {
			got = append(got, info.ID)
		}
		assert.Equal(t, []string{
			policies.SmallOrderID,
			policies.HighValuePaymentFailedID,
			policies.UltraHighValueReviewID,
			policies.CountryTaxID,
			policies.HighRiskCountryID,
			policies.ReviewingStateID,
			policies.WeekendOrderID,
		}, got)
		assert.False(t, infos[len(infos)-1].Enabled)
	})

	t.Run("should apply enabled overrides", func(t *testing.T) {
		registry := rules.NewRegistry(discardLogger())
		settings := policies.DefaultSettings()
		settings.Enabled = map[string]bool{policies.WeekendOrderID: true, policies.CountryTaxID: false}

		require.NoError(t, policies.Register(registry, settings, nil))

		weekend, _ := registry.Get(policies.WeekendOrderID)
		tax, _ := registry.Get(policies.CountryTaxID)
		assert.True(t, weekend.Enabled())
		assert.False(t, tax.Enabled())
	})

	t.Run("should reject unknown override ids", func(t *testing.T) {
		registry := rules.NewRegistry(discardLogger())
		settings := policies.DefaultSettings()
		settings.Enabled = map[string]bool{"missing": true}

		err := policies.Register(registry, settings, nil)

		require.Error(t, err)
		assert.Equal(t, 0, registry.Len())
	})

	t.Run("should reject invalid thresholds", func(t *testing.T) {
		settings := policies.DefaultSettings()
		settings.SmallOrderThreshold = 0

		err := policies.Register(rules.NewRegistry(discardLogger()), settings, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestSmallOrder(t *testing.T) {
	rule, err := policies.NewSmallOrder(policies.DefaultSmallOrderThreshold)
	require.NoError(t, err)
	evaluator := newCatalog(t, monday)

	for _, amount := range []float64{5, 15, 20} {
		ctx := rules.Context{Order: orderIn(t, order.StatePending, amount, nil)}

		assert.True(t, rule.AppliesTo(ctx), amount)
		filtered := evaluator.FilterAvailableEvents(order.StatePending.AllowedEvents(), ctx)
		assert.NotContains(t, filtered, order.EventPendingBiometricalVerification, amount)
		assert.Contains(t, filtered, order.EventNoVerificationNeeded, amount)
	}

	for _, amount := range []float64{25, 100} {
		ctx := rules.Context{Order: orderIn(t, order.StatePending, amount, nil)}

		assert.False(t, rule.AppliesTo(ctx), amount)
		filtered := evaluator.FilterAvailableEvents(order.StatePending.AllowedEvents(), ctx)
		assert.Contains(t, filtered, order.EventPendingBiometricalVerification, amount)
	}

	t.Run("should only apply to pending orders", func(t *testing.T) {
		assert.False(t, rule.AppliesTo(rules.Context{Order: orderIn(t, order.StateOnHold, 5, nil)}))
	})
}

func TestSmallOrder_SetThreshold(t *testing.T) {
	rule, err := policies.NewSmallOrder(20)
	require.NoError(t, err)
	ctx := rules.Context{Order: orderIn(t, order.StatePending, 50, nil)}

	require.NoError(t, rule.SetThreshold(50))
	assert.True(t, rule.AppliesTo(ctx))
	assert.Contains(t, rule.Description(), "50.00")

	for _, invalid := range []float64{0, -1, 1000.01} {
		err := rule.SetThreshold(invalid)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange, invalid)
	}
	assert.Equal(t, 50.0, rule.Threshold())
	assert.NoError(t, rule.SetThreshold(policies.MaxSmallOrderThreshold))
}

func TestHighValuePaymentFailed(t *testing.T) {
	evaluator := newCatalog(t, monday)

	testCases := []struct {
		amount   float64
		priority string
	}{
		{1500, "medium"},
		{2000, "medium"},
		{2500, "high"},
	}

	for _, tc := range testCases {
		ctx := rules.Context{Order: orderIn(t, order.StatePending, tc.amount, nil), Event: order.EventPaymentFailed}

		outcome := evaluator.EvaluateBusinessLogic(ctx)

		require.Len(t, outcome.TicketRequests, 1, tc.amount)
		ticket := outcome.TicketRequests[0]
		assert.Equal(t, tc.amount, ticket.Amount)
		assert.Equal(t, tc.priority, ticket.Metadata["priority"])
		assert.Equal(t, "paymentFailed", ticket.Metadata["event_type"])
		assert.Equal(t, true, ticket.Metadata["auto_created"])
		assert.Equal(t, policies.HighValuePaymentFailedID, ticket.Metadata["rule_id"])
		assert.Contains(t, outcome.ExecutedRules, policies.HighValuePaymentFailedID)
	}

	t.Run("should ignore orders at or under 1000", func(t *testing.T) {
		ctx := rules.Context{Order: orderIn(t, order.StatePending, 1000, nil), Event: order.EventPaymentFailed}

		assert.Empty(t, evaluator.EvaluateBusinessLogic(ctx).TicketRequests)
	})
}

func TestUltraHighValueReview(t *testing.T) {
	evaluator := newCatalog(t, monday)

	testCases := []struct {
		amount  float64
		manager bool
	}{
		{6000, false},
		{11000, true},
	}

	for _, tc := range testCases {
		ctx := rules.Context{Order: orderIn(t, order.StatePendingPayment, tc.amount, nil), Event: order.EventPaymentSuccessful}

		outcome := evaluator.EvaluateBusinessLogic(ctx)

		require.Len(t, outcome.TicketRequests, 1, tc.amount)
		ticket := outcome.TicketRequests[0]
		assert.Equal(t, "urgent", ticket.Metadata["priority"])
		assert.Equal(t, tc.manager, ticket.Metadata["requires_manager_approval"])
		assert.Equal(t, true, outcome.MetadataUpdates["requires_manual_review"])
		assert.Equal(t, "high_value_order", outcome.MetadataUpdates["review_reason"])
	}

	t.Run("should ignore other events", func(t *testing.T) {
		ctx := rules.Context{Order: orderIn(t, order.StatePendingPayment, 6000, nil), Event: order.EventOrderCancelledByUser}

		assert.Empty(t, evaluator.EvaluateBusinessLogic(ctx).ExecutedRules)
	})
}

func TestCountryTax(t *testing.T) {
	evaluator := newCatalog(t, monday)

	t.Run("should compute tax for MX", func(t *testing.T) {
		ctx := rules.Context{
			Order:       orderIn(t, order.StatePending, 100, nil),
			UserContext: kernel.Metadata{"country_code": "MX"},
		}

		enriched := evaluator.EnrichOrderData(ctx)

		assert.Equal(t, "MX", enriched["country_code"])
		assert.Equal(t, 0.16, enriched["tax_rate"])
		assert.Equal(t, "IVA", enriched["tax_name"])
		assert.Equal(t, 16.0, enriched["tax_amount"])
		assert.Equal(t, 100.0, enriched["base_amount"])
		assert.Equal(t, 116.0, enriched["total_amount_with_tax"])
		assert.Equal(t, policies.CountryTaxID, enriched["tax_applied_by_rule"])
	})

	t.Run("should round to cents", func(t *testing.T) {
		ctx := rules.Context{
			Order:       orderIn(t, order.StatePending, 19.99, nil),
			UserContext: kernel.Metadata{"country_code": "CA"},
		}

		enriched := evaluator.EnrichOrderData(ctx)

		assert.Equal(t, 2.6, enriched["tax_amount"])
		assert.Equal(t, 22.59, enriched["total_amount_with_tax"])
	})

	t.Run("should prefer request country over order metadata", func(t *testing.T) {
		ctx := rules.Context{
			Order:       orderIn(t, order.StatePending, 100, kernel.Metadata{"country_code": "US"}),
			UserContext: kernel.Metadata{"country_code": "DE"},
		}

		assert.Equal(t, 0.19, evaluator.EnrichOrderData(ctx)["tax_rate"])
	})

	t.Run("should fall back to order metadata", func(t *testing.T) {
		ctx := rules.Context{Order: orderIn(t, order.StatePending, 100, kernel.Metadata{"country_code": "US"})}

		assert.Equal(t, 0.08, evaluator.EnrichOrderData(ctx)["tax_rate"])
	})

	t.Run("should skip unknown countries", func(t *testing.T) {
		ctx := rules.Context{
			Order:       orderIn(t, order.StatePending, 100, nil),
			UserContext: kernel.Metadata{"country_code": "JP"},
		}

		assert.Empty(t, evaluator.EnrichOrderData(ctx))
	})
}

func TestHighRiskCountry(t *testing.T) {
	evaluator := newCatalog(t, monday)

	for _, amount := range []float64{5, 20, 500} {
		ctx := rules.Context{
			Order:       orderIn(t, order.StatePending, amount, nil),
			UserContext: kernel.Metadata{"country_code": "VE"},
		}

		filtered := evaluator.FilterAvailableEvents(order.StatePending.AllowedEvents(), ctx)

		assert.Contains(t, filtered, order.EventPendingBiometricalVerification, amount)
		assert.NotContains(t, filtered, order.EventNoVerificationNeeded, amount)
	}

	t.Run("should only apply to pending orders", func(t *testing.T) {
		rule := policies.NewHighRiskCountry()
		ctx := rules.Context{
			Order:       orderIn(t, order.StateConfirmed, 5, nil),
			UserContext: kernel.Metadata{"country_code": "KP"},
		}

		assert.False(t, rule.AppliesTo(ctx))
	})
}

func TestReviewingState(t *testing.T) {
	rule := policies.NewReviewingState()

	t.Run("should flag manual review events", func(t *testing.T) {
		ctx := rules.Context{
			Order:    orderIn(t, order.StateConfirmed, 100, nil),
			Event:    order.EventManualReviewRequired,
			Metadata: kernel.Metadata{"review_reason": "fraud suspicion"},
		}

		require.True(t, rule.AppliesTo(ctx))
		res, err := rule.Execute(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"Order flagged for manual review"}, res.Actions)
		assert.Equal(t, true, res.MetadataUpdates["requires_manual_review"])
		assert.Equal(t, "fraud suspicion", res.MetadataUpdates["review_reason"])
		assert.Equal(t, monday.Format(time.RFC3339Nano), res.MetadataUpdates["review_requested_at"])
	})

	t.Run("should default the review reason", func(t *testing.T) {
		ctx := rules.Context{Order: orderIn(t, order.StateConfirmed, 100, nil), Event: order.EventManualReviewRequired}

		res, err := rule.Execute(ctx)

		require.NoError(t, err)
		assert.Equal(t, "Manual review required", res.MetadataUpdates["review_reason"])
	})

	t.Run("should annotate orders in review", func(t *testing.T) {
		ctx := rules.Context{Order: orderIn(t, order.StateReviewing, 100, nil)}

		require.True(t, rule.AppliesTo(ctx))
		res, err := rule.Execute(ctx)

		require.NoError(t, err)
		assert.Equal(t, true, res.MetadataUpdates["in_review_state"])
		assert.Equal(t, []string{"approve", "reject"}, res.MetadataUpdates["available_review_actions"])
	})

	t.Run("should not apply otherwise", func(t *testing.T) {
		assert.False(t, rule.AppliesTo(rules.Context{Order: orderIn(t, order.StatePending, 100, nil)}))
	})
}

func TestWeekendOrder(t *testing.T) {
	t.Run("should be disabled by default", func(t *testing.T) {
		evaluator := newCatalog(t, saturday)
		ctx := rules.Context{Order: orderIn(t, order.StatePending, 800, nil)}

		filtered := evaluator.FilterAvailableEvents(order.StatePending.AllowedEvents(), ctx)

		assert.Contains(t, filtered, order.EventNoVerificationNeeded)
	})

	t.Run("should only allow cancellation on weekends once enabled", func(t *testing.T) {
		evaluator := newCatalog(t, saturday)
		require.True(t, evaluator.Registry().Enable(policies.WeekendOrderID))
		ctx := rules.Context{Order: orderIn(t, order.StatePending, 800, nil)}

		filtered := evaluator.FilterAvailableEvents(order.StatePending.AllowedEvents(), ctx)

		assert.Equal(t, []order.Event{order.EventOrderCancelledByUser}, filtered)
	})

	t.Run("should not apply on weekdays or small amounts", func(t *testing.T) {
		weekday, err := policies.NewWeekendOrder(policies.DefaultWeekendThreshold, func() time.Time { return monday })
		require.NoError(t, err)
		weekend, err := policies.NewWeekendOrder(policies.DefaultWeekendThreshold, func() time.Time { return saturday })
		require.NoError(t, err)

		assert.False(t, weekday.AppliesTo(rules.Context{Order: orderIn(t, order.StatePending, 800, nil)}))
		assert.False(t, weekend.AppliesTo(rules.Context{Order: orderIn(t, order.StatePending, 500, nil)}))
		assert.True(t, weekend.AppliesTo(rules.Context{Order: orderIn(t, order.StatePending, 501, nil)}))
	})
}
