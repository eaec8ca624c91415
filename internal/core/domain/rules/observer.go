package rules

import "time"

// Outcome classifies one rule invocation.
type Outcome string

const (
	OutcomeExecuted Outcome = "executed"
	OutcomeFailed   Outcome = "failed"
	OutcomeErrored  Outcome = "errored"
)

// Pipeline names an Evaluator entry point.
type Pipeline string

const (
	PipelineFilter        Pipeline = "filter"
	PipelineBusinessLogic Pipeline = "business_logic"
	PipelineValidation    Pipeline = "validation"
	PipelineEnrichment    Pipeline = "enrichment"
	PipelineEvaluateAll   Pipeline = "evaluate_all"
)

// Observer receives evaluation measurements. Implementations must be safe for
// concurrent use.
type Observer interface {
	RuleEvaluated(ruleID string, kind Kind, outcome Outcome, elapsed time.Duration)
	PipelineCompleted(pipeline Pipeline, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) RuleEvaluated(string, Kind, Outcome, time.Duration) {}

func (nopObserver) PipelineCompleted(Pipeline, time.Duration) {}
