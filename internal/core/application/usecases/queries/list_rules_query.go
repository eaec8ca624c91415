package queries

import (
	"context"
	"errors"

	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/pkg/guard"
)

var ErrListRulesQueryIsNotConstructed = errors.New(
	"ListRulesQuery must be created via NewListRulesQuery constructor",
)

// ListRulesQuery describes the registered rules for administration.
type ListRulesQuery struct {
	guard guard.ConstructorGuard
}

func NewListRulesQuery() ListRulesQuery {
	return ListRulesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListRulesQuery) Validate() error {
	return q.guard.Validate(ErrListRulesQueryIsNotConstructed)
}

// RulesView lists every rule in registration order.
type RulesView struct {
	Rules   []rules.Info
	Total   int
	Enabled int

	// ByKind counts the rules of each kind, including kinds with none.
	ByKind map[rules.Kind]int
}

type ListRulesQueryHandler struct {
	registry *rules.Registry
}

func NewListRulesQueryHandler(registry *rules.Registry) ListRulesQueryHandler {
	return ListRulesQueryHandler{registry: registry}
}

func (h ListRulesQueryHandler) Handle(_ context.Context, query ListRulesQuery) (RulesView, error) {
	if err := query.Validate(); err != nil {
		return RulesView{}, err
	}

	infos := h.registry.Infos()
	view := RulesView{
		Rules:  infos,
		Total:  len(infos),
		ByKind: make(map[rules.Kind]int, len(rules.Kinds())),
	}
	for _, kind := range rules.Kinds() {
		view.ByKind[kind] = 0
	}
	for _, info := range infos {
		view.ByKind[info.Kind]++
		if info.Enabled {
			view.Enabled++
		}
	}
	return view, nil
}
