package rules_test

import (
	"io"
	"log/slog"
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRule is a configurable rule for exercising the registry and evaluator.
type stubRule struct {
	*rules.Base
	applies func(rules.Context) bool
	execute func(rules.Context) (rules.Result, error)
}

func newStubRule(id string, kind rules.Kind, priority rules.Priority) *stubRule {
	return &stubRule{
		Base:    rules.NewBase(id, "stub "+id, kind, priority, true),
		applies: func(rules.Context) bool { return true },
		execute: func(rules.Context) (rules.Result, error) { return rules.Succeeded(id), nil },
	}
}

func (r *stubRule) AppliesTo(ctx rules.Context) bool {
	return r.applies(ctx)
}

func (r *stubRule) Execute(ctx rules.Context) (rules.Result, error) {
	return r.execute(ctx)
}

// stubFilter is an event filter driven by a function.
type stubFilter struct {
	rules.FilterBase
	filter func([]order.Event) ([]order.Event, error)
}

func newStubFilter(id string, priority rules.Priority, filter func([]order.Event) ([]order.Event, error)) *stubFilter {
	return &stubFilter{
		FilterBase: rules.NewFilterBase(id, "stub filter "+id, priority, true),
		filter:     filter,
	}
}

func (f *stubFilter) AppliesTo(rules.Context) bool {
	return true
}

func (f *stubFilter) FilterEvents(events []order.Event, _ rules.Context) ([]order.Event, error) {
	return f.filter(events)
}

type observerMock struct {
	mock.Mock
}

func (m *observerMock) RuleEvaluated(ruleID string, kind rules.Kind, outcome rules.Outcome, elapsed time.Duration) {
	m.Called(ruleID, kind, outcome, elapsed)
}

func (m *observerMock) PipelineCompleted(pipeline rules.Pipeline, elapsed time.Duration) {
	m.Called(pipeline, elapsed)
}

func pendingContext(amount float64) rules.Context {
	o, err := order.NewOrder(kernel.NewUUID(), []string{"sku-1"}, amount, nil, time.Now())
	if err != nil {
		panic(err)
	}
	return rules.Context{Order: o}
}
