package policies

import (
	"fmt"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
)

const (
	ultraHighValueThreshold  = 5000.0
	managerApprovalThreshold = 10000.0
)

// Order metadata keys written by the review rules.
const (
	MetaRequiresManualReview   = "requires_manual_review"
	MetaReviewReason           = "review_reason"
	MetaReviewThreshold        = "review_threshold"
	MetaReviewRequestedAt      = "review_requested_at"
	MetaInReviewState          = "in_review_state"
	MetaAvailableReviewActions = "available_review_actions"
)

// UltraHighValueReview flags paid orders over 5000 for manual review and opens
// an urgent ticket.
type UltraHighValueReview struct {
	*rules.Base
}

func NewUltraHighValueReview() *UltraHighValueReview {
	return &UltraHighValueReview{
		Base: rules.NewBase(UltraHighValueReviewID, "Orders over $5000 require manual review after payment",
			rules.KindBusinessLogic, rules.PriorityHigh, true),
	}
}

func (r *UltraHighValueReview) AppliesTo(ctx rules.Context) bool {
	return ctx.Event == order.EventPaymentSuccessful && ctx.Amount() > ultraHighValueThreshold
}

func (r *UltraHighValueReview) Execute(ctx rules.Context) (rules.Result, error) {
	amount := ctx.Amount()

	return rules.Result{
		Success: true,
		Actions: []string{fmt.Sprintf("Created review ticket for ultra-high-value order: $%.2f", amount)},
		TicketRequests: []rules.TicketRequest{{
			Reason: fmt.Sprintf("High value order requires manual review: $%.2f", amount),
			Amount: amount,
			Metadata: kernel.Metadata{
				TicketEventType:    "manual_review_required",
				TicketPriority:     "urgent",
				TicketAutoCreated:  true,
				TicketReviewType:   "high_value_order",
				TicketNeedsManager: amount > managerApprovalThreshold,
				TicketRuleID:       r.ID(),
			},
		}},
		MetadataUpdates: kernel.Metadata{
			MetaRequiresManualReview: true,
			MetaReviewReason:         "high_value_order",
			MetaReviewThreshold:      ultraHighValueThreshold,
		},
	}, nil
}
