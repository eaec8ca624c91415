package commands

import (
	"context"

	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/pkg/errs"
)

// ToggleRuleCommandHandler flips the enabled flag of a rule. The change is seen
// by the next evaluation pass.
type ToggleRuleCommandHandler struct {
	registry *rules.Registry
}

func NewToggleRuleCommandHandler(registry *rules.Registry) ToggleRuleCommandHandler {
	return ToggleRuleCommandHandler{registry: registry}
}

// Handle returns the rule description after the change, or an
// errs.ObjectNotFoundError for an unknown rule id.
func (h ToggleRuleCommandHandler) Handle(_ context.Context, cmd ToggleRuleCommand) (rules.Info, error) {
	if err := cmd.Validate(); err != nil {
		return rules.Info{}, err
	}

	var toggled bool
	if cmd.Enable() {
		toggled = h.registry.Enable(cmd.RuleID())
	} else {
		toggled = h.registry.Disable(cmd.RuleID())
	}
	if !toggled {
		return rules.Info{}, errs.NewObjectNotFoundError("rule", cmd.RuleID())
	}

	rule, _ := h.registry.Get(cmd.RuleID())
	return rules.InfoOf(rule), nil
}
