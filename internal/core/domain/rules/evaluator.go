package rules

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
)

// BusinessOutcome is the folded result of the business logic pipeline.
type BusinessOutcome struct {
	ExecutedRules   []string
	Actions         []string
	MetadataUpdates kernel.Metadata
	TicketRequests  []TicketRequest
}

// RuleFailure records a rule that failed or errored during EvaluateAll.
type RuleFailure struct {
	RuleID string
	Error  string
}

// Evaluation is the folded result of EvaluateAll.
type Evaluation struct {
	// Success is false when a critical rule failed and the pass stopped.
	Success         bool
	ExecutedRules   []string
	FailedRules     []RuleFailure
	Actions         []string
	MetadataUpdates kernel.Metadata
	TicketRequests  []TicketRequest

	// FilteredEvents is nil unless an event filter ran.
	FilteredEvents []order.Event
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithObserver reports every rule invocation and pipeline run to o.
func WithObserver(o Observer) Option {
	return func(e *Evaluator) {
		if o != nil {
			e.observer = o
		}
	}
}

// Evaluator runs the rules of a Registry.
type Evaluator struct {
	registry *Registry
	observer Observer
	logger   *slog.Logger
}

// NewEvaluator creates an evaluator over registry.
func NewEvaluator(registry *Registry, logger *slog.Logger, opts ...Option) *Evaluator {
	e := &Evaluator{
		registry: registry,
		observer: nopObserver{},
		logger:   logger.With("component", "rule_evaluator"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the evaluator reads from.
func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// FilterAvailableEvents passes events through every applicable event filter.
// Each filter receives the previous filter's output. A filter that errors is
// skipped and the list is left as it was before it ran.
func (e *Evaluator) FilterAvailableEvents(events []order.Event, ctx Context) []order.Event {
	defer e.observePipeline(PipelineFilter, time.Now())

	filtered := slices.Clone(events)
	for _, rule := range e.ordered(ctx, KindEventFilter) {
		next, ok := e.filter(rule, filtered, ctx)
		if !ok {
			continue
		}
		e.logger.DebugContext(context.Background(), "Filter rule applied", "rule_id", rule.ID(), "events", len(next))
		filtered = next
	}
	return filtered
}

// EvaluateBusinessLogic runs every applicable business logic rule. Metadata
// updates merge with later rules winning; actions and ticket requests
// concatenate. Failed or erroring rules are logged and left out.
func (e *Evaluator) EvaluateBusinessLogic(ctx Context) BusinessOutcome {
	defer e.observePipeline(PipelineBusinessLogic, time.Now())

	outcome := BusinessOutcome{MetadataUpdates: kernel.Metadata{}}
	for _, rule := range e.ordered(ctx, KindBusinessLogic) {
		res, err := e.run(rule, func() (Result, error) { return rule.Execute(ctx) })
		if err != nil {
			e.logger.ErrorContext(context.Background(), "Business rule errored", "rule_id", rule.ID(), "error", err)
			continue
		}
		if !res.Success {
			e.logger.WarnContext(context.Background(), "Business rule failed", "rule_id", rule.ID(), "message", res.ErrorMessage)
			continue
		}

		outcome.ExecutedRules = append(outcome.ExecutedRules, rule.ID())
		outcome.Actions = append(outcome.Actions, res.Actions...)
		outcome.TicketRequests = append(outcome.TicketRequests, res.TicketRequests...)
		outcome.MetadataUpdates = outcome.MetadataUpdates.Merge(res.MetadataUpdates)
	}
	return outcome
}

// ValidateContext runs the applicable validation rules and stops at the first
// one that fails or errors, returning a *ValidationError naming it.
func (e *Evaluator) ValidateContext(ctx Context) error {
	defer e.observePipeline(PipelineValidation, time.Now())

	for _, rule := range e.ordered(ctx, KindValidation) {
		res, err := e.run(rule, func() (Result, error) { return rule.Execute(ctx) })
		if err != nil {
			return &ValidationError{RuleID: rule.ID(), Message: err.Error()}
		}
		if !res.Success {
			message := res.ErrorMessage
			if message == "" {
				message = ErrValidationFailed.Error()
			}
			return &ValidationError{RuleID: rule.ID(), Message: message}
		}
	}
	return nil
}

// EnrichOrderData merges the metadata updates of every applicable enrichment
// rule. Failed or erroring rules contribute nothing.
func (e *Evaluator) EnrichOrderData(ctx Context) kernel.Metadata {
	defer e.observePipeline(PipelineEnrichment, time.Now())

	enriched := kernel.Metadata{}
	for _, rule := range e.ordered(ctx, KindEnrichment) {
		res, err := e.run(rule, func() (Result, error) { return rule.Execute(ctx) })
		if err != nil {
			e.logger.WarnContext(context.Background(), "Enrichment rule errored", "rule_id", rule.ID(), "error", err)
			continue
		}
		if !res.Success {
			continue
		}
		enriched = enriched.Merge(res.MetadataUpdates)
	}
	return enriched
}

// EvaluateAll runs every applicable rule of any kind in one ordered pass.
// Event filters are chained over the allowed events of the order state; an
// event_filter rule that cannot filter is skipped, as in FilterAvailableEvents.
// Failures are recorded and the pass continues, unless the failing rule is
// critical, in which case the pass stops and Success is false.
func (e *Evaluator) EvaluateAll(ctx Context) Evaluation {
	defer e.observePipeline(PipelineEvaluateAll, time.Now())

	eval := Evaluation{Success: true, MetadataUpdates: kernel.Metadata{}}
	events := ctx.State().AllowedEvents()

	for _, rule := range e.ordered(ctx) {
		var (
			res Result
			err error
		)
		if rule.Kind() == KindEventFilter {
			filter, ok := rule.(EventFilter)
			if !ok {
				e.logger.WarnContext(context.Background(), "Rule of kind event_filter does not filter events", "rule_id", rule.ID())
				continue
			}
			res, err = e.run(rule, func() (Result, error) {
				out, filterErr := filter.FilterEvents(slices.Clone(events), ctx)
				return Result{Success: true, FilteredEvents: out}, filterErr
			})
		} else {
			res, err = e.run(rule, func() (Result, error) { return rule.Execute(ctx) })
		}

		if err == nil && res.Success {
			eval.ExecutedRules = append(eval.ExecutedRules, rule.ID())
			eval.Actions = append(eval.Actions, res.Actions...)
			eval.TicketRequests = append(eval.TicketRequests, res.TicketRequests...)
			eval.MetadataUpdates = eval.MetadataUpdates.Merge(res.MetadataUpdates)
			if rule.Kind() == KindEventFilter {
				events = res.FilteredEvents
				eval.FilteredEvents = events
			}
			continue
		}

		message := res.ErrorMessage
		if err != nil {
			message = err.Error()
		}
		eval.FailedRules = append(eval.FailedRules, RuleFailure{RuleID: rule.ID(), Error: message})

		if rule.Priority() == PriorityCritical {
			e.logger.ErrorContext(context.Background(), "Critical rule failed, stopping evaluation", "rule_id", rule.ID(), "error", message)
			eval.Success = false
			break
		}
		e.logger.WarnContext(context.Background(), "Rule failed", "rule_id", rule.ID(), "error", message)
	}
	return eval
}

// ordered returns the applicable rules sorted by priority. Rules sharing a
// priority keep their registration order.
func (e *Evaluator) ordered(ctx Context, kinds ...Kind) []Rule {
	applicable := e.registry.Applicable(ctx, kinds...)
	slices.SortStableFunc(applicable, func(a, b Rule) int {
		return cmp.Compare(a.Priority(), b.Priority())
	})
	return applicable
}

func (e *Evaluator) filter(rule Rule, events []order.Event, ctx Context) ([]order.Event, bool) {
	filter, ok := rule.(EventFilter)
	if !ok {
		e.logger.WarnContext(context.Background(), "Rule of kind event_filter does not filter events", "rule_id", rule.ID())
		return nil, false
	}

	res, err := e.run(rule, func() (Result, error) {
		out, filterErr := filter.FilterEvents(slices.Clone(events), ctx)
		return Result{Success: true, FilteredEvents: out}, filterErr
	})
	if err != nil {
		e.logger.ErrorContext(context.Background(), "Filter rule errored", "rule_id", rule.ID(), "error", err)
		return nil, false
	}
	return res.FilteredEvents, true
}

// run invokes one rule. Panics become errors.
func (e *Evaluator) run(rule Rule, invoke func() (Result, error)) (res Result, err error) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			res, err = Result{}, fmt.Errorf("rule %s panicked: %v", rule.ID(), rec)
		}

		outcome := OutcomeExecuted
		switch {
		case err != nil:
			outcome = OutcomeErrored
		case !res.Success:
			outcome = OutcomeFailed
		}
		e.observer.RuleEvaluated(rule.ID(), rule.Kind(), outcome, time.Since(start))
	}()

	return invoke()
}

func (e *Evaluator) observePipeline(pipeline Pipeline, start time.Time) {
	e.observer.PipelineCompleted(pipeline, time.Since(start))
	e.logger.DebugContext(context.Background(), "Pipeline completed", "pipeline", pipeline, "elapsed", time.Since(start))
}
