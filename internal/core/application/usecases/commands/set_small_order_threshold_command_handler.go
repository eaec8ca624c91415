package commands

import (
	"context"
	"fmt"

	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/core/domain/rules/policies"
	"ordermanager/internal/pkg/errs"
)

type thresholdSetter interface {
	SetThreshold(threshold float64) error
}

// SetSmallOrderThresholdCommandHandler updates the registered small order rule.
type SetSmallOrderThresholdCommandHandler struct {
	registry *rules.Registry
}

func NewSetSmallOrderThresholdCommandHandler(registry *rules.Registry) SetSmallOrderThresholdCommandHandler {
	return SetSmallOrderThresholdCommandHandler{registry: registry}
}

// Handle returns the new rule description.
func (h SetSmallOrderThresholdCommandHandler) Handle(_ context.Context, cmd SetSmallOrderThresholdCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	rule, ok := h.registry.Get(policies.SmallOrderID)
	if !ok {
		return "", errs.NewObjectNotFoundError("rule", policies.SmallOrderID)
	}

	setter, ok := rule.(thresholdSetter)
	if !ok {
		return "", fmt.Errorf("rule %s does not support a threshold", policies.SmallOrderID)
	}

	if err := setter.SetThreshold(cmd.Threshold()); err != nil {
		return "", err
	}

	return rule.Description(), nil
}
