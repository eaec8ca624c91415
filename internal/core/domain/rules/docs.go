// Package rules provides the business rule engine that runs around the order
// state machine.
//
// The package includes:
//   - Rule and EventFilter: the contracts implemented by concrete rules
//   - Context and Result: the input and output of one rule invocation
//   - Registry: the process-lifetime catalog of rule instances
//   - Evaluator: the pipelines that run applicable rules in priority order
//
// Rules execute sequentially. Lower Priority values run first and rules sharing a
// priority run in registration order. A failing or erroring rule contributes nothing
// to the event filter, business logic and enrichment pipelines; validation and
// critical rules fail closed.
package rules
