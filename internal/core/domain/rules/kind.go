package rules

import "fmt"

// Kind tags a rule with the pipeline that runs it.
type Kind string

const (
	KindEventFilter   Kind = "event_filter"
	KindBusinessLogic Kind = "business_logic"
	KindValidation    Kind = "validation"
	KindEnrichment    Kind = "enrichment"
)

// Kinds returns every rule kind.
func Kinds() []Kind {
	return []Kind{KindEventFilter, KindBusinessLogic, KindValidation, KindEnrichment}
}

func (k Kind) String() string {
	return string(k)
}

// Priority orders rule execution. Lower values run earlier.
type Priority int

const (
	PriorityCritical Priority = 1
	PriorityHigh     Priority = 2
	PriorityMedium   Priority = 3
	PriorityLow      Priority = 4
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}
