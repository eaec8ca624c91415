package policies

import (
	"fmt"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
)

const (
	paymentFailedTicketThreshold = 1000.0
	paymentFailedHighPriority    = 2000.0
)

// Ticket metadata keys shared by the ticket-opening rules.
const (
	TicketEventType    = "event_type"
	TicketPriority     = "priority"
	TicketAutoCreated  = "auto_created"
	TicketCreatedBy    = "created_by"
	TicketRuleID       = "rule_id"
	TicketReviewType   = "review_type"
	TicketNeedsManager = "requires_manager_approval"
)

// HighValuePaymentFailed opens a support ticket when payment fails on an order
// over 1000.
type HighValuePaymentFailed struct {
	*rules.Base
}

func NewHighValuePaymentFailed() *HighValuePaymentFailed {
	return &HighValuePaymentFailed{
		Base: rules.NewBase(HighValuePaymentFailedID, "Create support ticket for high-value payment failures",
			rules.KindBusinessLogic, rules.PriorityMedium, true),
	}
}

func (r *HighValuePaymentFailed) AppliesTo(ctx rules.Context) bool {
	return ctx.Event == order.EventPaymentFailed && ctx.Amount() > paymentFailedTicketThreshold
}

func (r *HighValuePaymentFailed) Execute(ctx rules.Context) (rules.Result, error) {
	amount := ctx.Amount()
	priority := "medium"
	if amount > paymentFailedHighPriority {
		priority = "high"
	}

	return rules.Result{
		Success: true,
		Actions: []string{fmt.Sprintf("Created support ticket for payment failure: $%.2f", amount)},
		TicketRequests: []rules.TicketRequest{{
			Reason: fmt.Sprintf("High amount payment failure: $%.2f", amount),
			Amount: amount,
			Metadata: kernel.Metadata{
				TicketEventType:   ctx.Event.String(),
				TicketAutoCreated: true,
				TicketCreatedBy:   "business_rules",
				TicketPriority:    priority,
				TicketRuleID:      r.ID(),
			},
		}},
	}, nil
}
