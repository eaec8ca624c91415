package rules_test

import (
	"errors"
	"slices"
	"testing"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEvaluator(rs ...rules.Rule) *rules.Evaluator {
	registry := rules.NewRegistry(discardLogger())
	for _, r := range rs {
		registry.Register(r)
	}
	return rules.NewEvaluator(registry, discardLogger())
}

func TestEvaluator_FilterAvailableEvents(t *testing.T) {
	base := []order.Event{order.EventNoVerificationNeeded, order.EventPendingBiometricalVerification}

	t.Run("should chain filters with same priority in registration order", func(t *testing.T) {
		remove := newStubFilter("remove", rules.PriorityHigh, func(events []order.Event) ([]order.Event, error) {
			return slices.DeleteFunc(events, func(e order.Event) bool { return e == order.EventPendingBiometricalVerification }), nil
		})
		only := newStubFilter("only", rules.PriorityHigh, func(events []order.Event) ([]order.Event, error) {
			return []order.Event{order.EventPendingBiometricalVerification}, nil
		})

		assert.Equal(t, []order.Event{order.EventPendingBiometricalVerification},
			newEvaluator(remove, only).FilterAvailableEvents(base, pendingContext(10)))
		assert.Equal(t, []order.Event{},
			newEvaluator(only, remove).FilterAvailableEvents(base, pendingContext(10)))
	})

	t.Run("should run lower priority values first", func(t *testing.T) {
		var calls []string
		record := func(id string) func([]order.Event) ([]order.Event, error) {
			return func(events []order.Event) ([]order.Event, error) {
				calls = append(calls, id)
				return events, nil
			}
		}

		newEvaluator(
			newStubFilter("low", rules.PriorityLow, record("low")),
			newStubFilter("critical", rules.PriorityCritical, record("critical")),
			newStubFilter("medium", rules.PriorityMedium, record("medium")),
		).FilterAvailableEvents(base, pendingContext(10))

		assert.Equal(t, []string{"critical", "medium", "low"}, calls)
	})

	t.Run("should skip erroring and panicking filters", func(t *testing.T) {
		failing := newStubFilter("failing", rules.PriorityHigh, func([]order.Event) ([]order.Event, error) {
			return nil, errors.New("boom")
		})
		panicking := newStubFilter("panicking", rules.PriorityHigh, func([]order.Event) ([]order.Event, error) {
			panic("boom")
		})

		got := newEvaluator(failing, panicking).FilterAvailableEvents(base, pendingContext(10))

		assert.Equal(t, base, got)
	})

	t.Run("should not mutate the caller list", func(t *testing.T) {
		input := slices.Clone(base)
		mutating := newStubFilter("mutating", rules.PriorityHigh, func(events []order.Event) ([]order.Event, error) {
			events[0] = order.EventOrderCancelledByUser
			return events, nil
		})

		newEvaluator(mutating).FilterAvailableEvents(input, pendingContext(10))

		assert.Equal(t, base, input)
	})
}

func TestEvaluator_EvaluateBusinessLogic(t *testing.T) {
	t.Run("should merge results with later rules winning", func(t *testing.T) {
		first := newStubRule("first", rules.KindBusinessLogic, rules.PriorityHigh)
		first.execute = func(rules.Context) (rules.Result, error) {
			return rules.Result{
				Success:         true,
				Actions:         []string{"first"},
				MetadataUpdates: kernel.Metadata{"k": "first", "only_first": true},
				TicketRequests:  []rules.TicketRequest{{Reason: "r1", Amount: 1}},
			}, nil
		}
		second := newStubRule("second", rules.KindBusinessLogic, rules.PriorityMedium)
		second.execute = func(rules.Context) (rules.Result, error) {
			return rules.Result{
				Success:         true,
				Actions:         []string{"second"},
				MetadataUpdates: kernel.Metadata{"k": "second"},
				TicketRequests:  []rules.TicketRequest{{Reason: "r2", Amount: 2}},
			}, nil
		}

		outcome := newEvaluator(second, first).EvaluateBusinessLogic(pendingContext(10))

		assert.Equal(t, []string{"first", "second"}, outcome.ExecutedRules)
		assert.Equal(t, []string{"first", "second"}, outcome.Actions)
		assert.Equal(t, kernel.Metadata{"k": "second", "only_first": true}, outcome.MetadataUpdates)
		assert.Len(t, outcome.TicketRequests, 2)
	})

	t.Run("should omit failed erroring and panicking rules", func(t *testing.T) {
		failed := newStubRule("failed", rules.KindBusinessLogic, rules.PriorityHigh)
		failed.execute = func(rules.Context) (rules.Result, error) { return rules.Failed("nope"), nil }
		errored := newStubRule("errored", rules.KindBusinessLogic, rules.PriorityHigh)
		errored.execute = func(rules.Context) (rules.Result, error) { return rules.Result{}, errors.New("boom") }
		panicking := newStubRule("panicking", rules.KindBusinessLogic, rules.PriorityHigh)
		panicking.execute = func(rules.Context) (rules.Result, error) { panic("boom") }
		ok := newStubRule("ok", rules.KindBusinessLogic, rules.PriorityLow)

		outcome := newEvaluator(failed, errored, panicking, ok).EvaluateBusinessLogic(pendingContext(10))

		assert.Equal(t, []string{"ok"}, outcome.ExecutedRules)
	})

	t.Run("should ignore other kinds", func(t *testing.T) {
		outcome := newEvaluator(newStubRule("enrich", rules.KindEnrichment, rules.PriorityLow)).
			EvaluateBusinessLogic(pendingContext(10))

		assert.Empty(t, outcome.ExecutedRules)
		assert.NotNil(t, outcome.MetadataUpdates)
	})
}

func TestEvaluator_ValidateContext(t *testing.T) {
	t.Run("should pass without validation rules", func(t *testing.T) {
		assert.NoError(t, newEvaluator().ValidateContext(pendingContext(10)))
	})

	t.Run("should stop at first failing rule", func(t *testing.T) {
		var calls []string
		failing := newStubRule("limit", rules.KindValidation, rules.PriorityCritical)
		failing.execute = func(rules.Context) (rules.Result, error) {
			calls = append(calls, "limit")
			return rules.Failed("amount over limit"), nil
		}
		later := newStubRule("later", rules.KindValidation, rules.PriorityCritical)
		later.execute = func(rules.Context) (rules.Result, error) {
			calls = append(calls, "later")
			return rules.Succeeded(), nil
		}

		err := newEvaluator(failing, later).ValidateContext(pendingContext(10))

		var validationErr *rules.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.ErrorIs(t, err, rules.ErrValidationFailed)
		assert.Equal(t, "limit", validationErr.RuleID)
		assert.Equal(t, "business rule 'limit' failed: amount over limit", err.Error())
		assert.Equal(t, []string{"limit"}, calls)
	})

	t.Run("should attribute errors to the rule", func(t *testing.T) {
		errored := newStubRule("errored", rules.KindValidation, rules.PriorityCritical)
		errored.execute = func(rules.Context) (rules.Result, error) { return rules.Result{}, errors.New("boom") }

		err := newEvaluator(errored).ValidateContext(pendingContext(10))

		var validationErr *rules.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "errored", validationErr.RuleID)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestEvaluator_EnrichOrderData(t *testing.T) {
	first := newStubRule("first", rules.KindEnrichment, rules.PriorityMedium)
	first.execute = func(rules.Context) (rules.Result, error) {
		return rules.Result{Success: true, MetadataUpdates: kernel.Metadata{"a": 1, "b": 1}}, nil
	}
	second := newStubRule("second", rules.KindEnrichment, rules.PriorityLow)
	second.execute = func(rules.Context) (rules.Result, error) {
		return rules.Result{Success: true, MetadataUpdates: kernel.Metadata{"b": 2}}, nil
	}
	broken := newStubRule("broken", rules.KindEnrichment, rules.PriorityLow)
	broken.execute = func(rules.Context) (rules.Result, error) { panic("boom") }

	enriched := newEvaluator(second, broken, first).EnrichOrderData(pendingContext(10))

	assert.Equal(t, kernel.Metadata{"a": 1, "b": 2}, enriched)
}

func TestEvaluator_EvaluateAll(t *testing.T) {
	t.Run("should record non-critical failures and continue", func(t *testing.T) {
		failed := newStubRule("failed", rules.KindBusinessLogic, rules.PriorityHigh)
		failed.execute = func(rules.Context) (rules.Result, error) { return rules.Failed("nope"), nil }
		ok := newStubRule("ok", rules.KindEnrichment, rules.PriorityLow)

		eval := newEvaluator(failed, ok).EvaluateAll(pendingContext(10))

		assert.True(t, eval.Success)
		assert.Equal(t, []string{"ok"}, eval.ExecutedRules)
		assert.Equal(t, []rules.RuleFailure{{RuleID: "failed", Error: "nope"}}, eval.FailedRules)
		assert.Nil(t, eval.FilteredEvents)
	})

	t.Run("should stop on critical failure", func(t *testing.T) {
		critical := newStubRule("critical", rules.KindValidation, rules.PriorityCritical)
		critical.execute = func(rules.Context) (rules.Result, error) { return rules.Result{}, errors.New("boom") }
		never := newStubRule("never", rules.KindBusinessLogic, rules.PriorityHigh)
		never.execute = func(rules.Context) (rules.Result, error) {
			t.Fatal("rule after critical failure must not run")
			return rules.Result{}, nil
		}

		eval := newEvaluator(never, critical).EvaluateAll(pendingContext(10))

		assert.False(t, eval.Success)
		assert.Empty(t, eval.ExecutedRules)
		require.Len(t, eval.FailedRules, 1)
		assert.Equal(t, "critical", eval.FailedRules[0].RuleID)
	})

	t.Run("should chain filters over the allowed events of the state", func(t *testing.T) {
		dropAll := newStubFilter("drop", rules.PriorityHigh, func([]order.Event) ([]order.Event, error) {
			return []order.Event{order.EventOrderCancelledByUser}, nil
		})

		eval := newEvaluator(dropAll).EvaluateAll(pendingContext(10))

		assert.Equal(t, []order.Event{order.EventOrderCancelledByUser}, eval.FilteredEvents)
		assert.Equal(t, []string{"drop"}, eval.ExecutedRules)
	})

	t.Run("should skip event_filter rules that cannot filter", func(t *testing.T) {
		notAFilter := newStubRule("not_a_filter", rules.KindEventFilter, rules.PriorityCritical)
		keep := newStubFilter("keep", rules.PriorityLow, func(events []order.Event) ([]order.Event, error) {
			return events, nil
		})

		evaluator := newEvaluator(notAFilter, keep)
		ctx := pendingContext(10)
		eval := evaluator.EvaluateAll(ctx)

		assert.True(t, eval.Success)
		assert.Equal(t, []string{"keep"}, eval.ExecutedRules)
		assert.Empty(t, eval.FailedRules)
		assert.Equal(t, order.StatePending.AllowedEvents(), eval.FilteredEvents)
		assert.Equal(t, evaluator.FilterAvailableEvents(order.StatePending.AllowedEvents(), ctx), eval.FilteredEvents)
	})
}

func TestEvaluator_Observer(t *testing.T) {
	registry := rules.NewRegistry(discardLogger())
	ok := newStubRule("ok", rules.KindBusinessLogic, rules.PriorityHigh)
	failed := newStubRule("failed", rules.KindBusinessLogic, rules.PriorityHigh)
	failed.execute = func(rules.Context) (rules.Result, error) { return rules.Failed("nope"), nil }
	errored := newStubRule("errored", rules.KindBusinessLogic, rules.PriorityHigh)
	errored.execute = func(rules.Context) (rules.Result, error) { return rules.Result{}, errors.New("boom") }
	registry.Register(ok)
	registry.Register(failed)
	registry.Register(errored)

	observer := &observerMock{}
	observer.On("RuleEvaluated", "ok", rules.KindBusinessLogic, rules.OutcomeExecuted, mock.Anything).Once()
	observer.On("RuleEvaluated", "failed", rules.KindBusinessLogic, rules.OutcomeFailed, mock.Anything).Once()
	observer.On("RuleEvaluated", "errored", rules.KindBusinessLogic, rules.OutcomeErrored, mock.Anything).Once()
	observer.On("PipelineCompleted", rules.PipelineBusinessLogic, mock.Anything).Once()

	rules.NewEvaluator(registry, discardLogger(), rules.WithObserver(observer)).EvaluateBusinessLogic(pendingContext(10))

	observer.AssertExpectations(t)
}
