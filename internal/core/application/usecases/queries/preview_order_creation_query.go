package queries

import (
	"context"
	"errors"
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/pkg/guard"
)

var ErrPreviewOrderCreationQueryIsNotConstructed = errors.New(
	"PreviewOrderCreationQuery must be created via NewPreviewOrderCreationQuery constructor",
)

// PreviewOrderCreationQuery shows what the rules would do with an order that
// has not been created yet.
type PreviewOrderCreationQuery struct {
	productIDs  []string
	amount      float64
	metadata    kernel.Metadata
	userContext kernel.Metadata

	guard guard.ConstructorGuard
}

func NewPreviewOrderCreationQuery(
	productIDs []string,
	amount float64,
	metadata kernel.Metadata,
	userContext kernel.Metadata,
) PreviewOrderCreationQuery {
	return PreviewOrderCreationQuery{
		productIDs:  productIDs,
		amount:      amount,
		metadata:    metadata.Clone(),
		userContext: userContext.Clone(),
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q PreviewOrderCreationQuery) Validate() error {
	return q.guard.Validate(ErrPreviewOrderCreationQueryIsNotConstructed)
}

// CreationPreview reports the validation verdict, the enrichment data and the
// business rules that would run for the draft order.
type CreationPreview struct {
	ValidationPassed bool
	ValidationError  string
	Enrichment       kernel.Metadata
	Business         rules.BusinessOutcome
}

type PreviewOrderCreationQueryHandler struct {
	evaluator *rules.Evaluator
	now       func() time.Time
}

func NewPreviewOrderCreationQueryHandler(evaluator *rules.Evaluator, now func() time.Time) PreviewOrderCreationQueryHandler {
	if now == nil {
		now = time.Now
	}
	return PreviewOrderCreationQueryHandler{evaluator: evaluator, now: now}
}

// Handle fails with order.ErrInvalidOrderData when the draft itself is malformed.
// A failing validation rule is reported in the preview, not as an error.
func (h PreviewOrderCreationQueryHandler) Handle(_ context.Context, query PreviewOrderCreationQuery) (CreationPreview, error) {
	if err := query.Validate(); err != nil {
		return CreationPreview{}, err
	}

	draft, err := order.NewOrder(kernel.NewUUID(), query.productIDs, query.amount, query.metadata, h.now())
	if err != nil {
		return CreationPreview{}, err
	}

	rc := rules.Context{Order: draft, UserContext: query.userContext}
	preview := CreationPreview{ValidationPassed: true}
	if err = h.evaluator.ValidateContext(rc); err != nil {
		preview.ValidationPassed = false
		preview.ValidationError = err.Error()
	}
	preview.Enrichment = h.evaluator.EnrichOrderData(rc)
	preview.Business = h.evaluator.EvaluateBusinessLogic(rc)

	return preview, nil
}
