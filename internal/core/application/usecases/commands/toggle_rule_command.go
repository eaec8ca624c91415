package commands

import (
	"errors"
	"strings"

	"ordermanager/internal/pkg/errs"
	"ordermanager/internal/pkg/guard"
)

var ErrToggleRuleCommandIsNotConstructed = errors.New(
	"ToggleRuleCommand must be created via NewToggleRuleCommand constructor",
)

// ToggleRuleCommand enables or disables a registered rule.
type ToggleRuleCommand struct { //nolint:recvcheck //using for validation
	ruleID string
	enable bool

	guard guard.ConstructorGuard
}

func NewToggleRuleCommand(ruleID string, enable bool) (ToggleRuleCommand, error) {
	if strings.TrimSpace(ruleID) == "" {
		return ToggleRuleCommand{}, errs.NewValueIsRequiredError("rule_id")
	}

	return ToggleRuleCommand{
		ruleID: ruleID,
		enable: enable,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ToggleRuleCommand) Validate() error {
	return c.guard.Validate(ErrToggleRuleCommandIsNotConstructed)
}

func (c ToggleRuleCommand) RuleID() string {
	return c.ruleID
}

func (c ToggleRuleCommand) Enable() bool {
	return c.enable
}
