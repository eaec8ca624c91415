package cmd

import (
	"fmt"
	"os"

	"ordermanager/internal/core/domain/rules/policies"

	"gopkg.in/yaml.v3"
)

// RulesFile is the YAML layout of the rule settings file.
//
//	small_order_threshold: 20
//	weekend_threshold: 500
//	rules:
//	  weekend_order_restriction:
//	    enabled: true
type RulesFile struct {
	SmallOrderThreshold *float64               `yaml:"small_order_threshold"`
	WeekendThreshold    *float64               `yaml:"weekend_threshold"`
	Rules               map[string]RuleSetting `yaml:"rules"`
}

type RuleSetting struct {
	Enabled *bool `yaml:"enabled"`
}

// LoadRuleSettings reads the rule settings file at path over the defaults.
// An empty path yields the defaults.
func LoadRuleSettings(path string) (policies.Settings, error) {
	settings := policies.DefaultSettings()
	if path == "" {
		return settings, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("read rule settings: %w", err)
	}
	return parseRuleSettings(raw, settings)
}

func parseRuleSettings(raw []byte, settings policies.Settings) (policies.Settings, error) {
	var file RulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return settings, fmt.Errorf("parse rule settings: %w", err)
	}

	if file.SmallOrderThreshold != nil {
		settings.SmallOrderThreshold = *file.SmallOrderThreshold
	}
	if file.WeekendThreshold != nil {
		settings.WeekendThreshold = *file.WeekendThreshold
	}
	for id, rule := range file.Rules {
		if rule.Enabled == nil {
			continue
		}
		if settings.Enabled == nil {
			settings.Enabled = make(map[string]bool)
		}
		settings.Enabled[id] = *rule.Enabled
	}

	return settings, nil
}
