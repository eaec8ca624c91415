package policies

import (
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
)

const defaultReviewReason = "Manual review required"

// ReviewingState annotates orders that are flagged for or sitting in review.
// It never moves the order to another state.
type ReviewingState struct {
	*rules.Base
}

func NewReviewingState() *ReviewingState {
	return &ReviewingState{
		Base: rules.NewBase(ReviewingStateID, "Handle orders that enter reviewing state",
			rules.KindBusinessLogic, rules.PriorityMedium, true),
	}
}

func (r *ReviewingState) AppliesTo(ctx rules.Context) bool {
	return ctx.Event == order.EventManualReviewRequired || ctx.State() == order.StateReviewing
}

func (r *ReviewingState) Execute(ctx rules.Context) (rules.Result, error) {
	res := rules.Result{Success: true, MetadataUpdates: kernel.Metadata{}}

	if ctx.Event == order.EventManualReviewRequired {
		reason, ok := ctx.Metadata.String(MetaReviewReason)
		if !ok {
			reason = defaultReviewReason
		}
		var requestedAt string
		if ctx.Order != nil {
			requestedAt = ctx.Order.UpdatedAt().Format(time.RFC3339Nano)
		}

		res.Actions = append(res.Actions, "Order flagged for manual review")
		res.MetadataUpdates[MetaRequiresManualReview] = true
		res.MetadataUpdates[MetaReviewRequestedAt] = requestedAt
		res.MetadataUpdates[MetaReviewReason] = reason
	}

	if ctx.State() == order.StateReviewing {
		res.Actions = append(res.Actions, "Order is in reviewing state")
		res.MetadataUpdates[MetaInReviewState] = true
		res.MetadataUpdates[MetaAvailableReviewActions] = []string{"approve", "reject"}
	}

	return res, nil
}
