package rules

import (
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
)

// TicketRequest asks the caller to open a support ticket for the order under
// evaluation.
type TicketRequest struct {
	Reason   string
	Amount   float64
	Metadata kernel.Metadata
}

// Result is the outcome of one rule invocation.
type Result struct {
	Success         bool
	Actions         []string
	FilteredEvents  []order.Event
	MetadataUpdates kernel.Metadata
	TicketRequests  []TicketRequest
	ErrorMessage    string
}

// Succeeded builds a successful result carrying actions.
func Succeeded(actions ...string) Result {
	return Result{Success: true, Actions: actions}
}

// Failed builds a failed result with a message.
func Failed(message string) Result {
	return Result{Success: false, ErrorMessage: message}
}
