package queries

import (
	"context"
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/pkg/guard"
)

var ErrSimulateRulesQueryIsNotConstructed = errors.New(
	"SimulateRulesQuery must be created via NewSimulateRulesQuery constructor",
)

// SimulateRulesQuery runs every applicable rule against a stored order without
// persisting anything or opening tickets.
type SimulateRulesQuery struct {
	orderID     kernel.UUID
	userContext kernel.Metadata

	guard guard.ConstructorGuard
}

func NewSimulateRulesQuery(orderID kernel.UUID, userContext kernel.Metadata) (SimulateRulesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return SimulateRulesQuery{}, err
	}
	return SimulateRulesQuery{
		orderID:     orderID,
		userContext: userContext.Clone(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q SimulateRulesQuery) Validate() error {
	return q.guard.Validate(ErrSimulateRulesQueryIsNotConstructed)
}

func (q SimulateRulesQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q SimulateRulesQuery) UserContext() kernel.Metadata {
	return q.userContext
}

// Simulation is the outcome of a dry run.
type Simulation struct {
	OrderID         kernel.UUID
	Amount          float64
	State           order.State
	Evaluation      rules.Evaluation
	ApplicableRules []rules.Info
}

type SimulateRulesQueryHandler struct {
	orders    OrderReader
	evaluator *rules.Evaluator
}

func NewSimulateRulesQueryHandler(orders OrderReader, evaluator *rules.Evaluator) SimulateRulesQueryHandler {
	return SimulateRulesQueryHandler{orders: orders, evaluator: evaluator}
}

func (h SimulateRulesQueryHandler) Handle(ctx context.Context, query SimulateRulesQuery) (Simulation, error) {
	if err := query.Validate(); err != nil {
		return Simulation{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return Simulation{}, err
	}

	rc := rules.Context{Order: o, UserContext: query.UserContext()}
	applicable := h.evaluator.Registry().Applicable(rc)
	infos := make([]rules.Info, 0, len(applicable))
	for _, rule := range applicable {
		infos = append(infos, rules.InfoOf(rule))
	}

	return Simulation{
		OrderID:         o.ID(),
		Amount:          o.Amount(),
		State:           o.State(),
		Evaluation:      h.evaluator.EvaluateAll(rc),
		ApplicableRules: infos,
	}, nil
}
