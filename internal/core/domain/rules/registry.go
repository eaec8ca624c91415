package rules

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Registry is the catalog of rule instances. It is created once at startup and
// shared by every request; only the enabled flags change afterwards.
type Registry struct {
	mu     sync.RWMutex
	rules  map[string]Rule
	order  []string
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		rules:  make(map[string]Rule),
		logger: logger.With("component", "rule_registry"),
	}
}

// Register adds rule. A rule registered under an existing id replaces the old one
// and moves to the end of the registration order.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.ID()]; exists {
		r.logger.WarnContext(context.Background(), "Rule is being overwritten", "rule_id", rule.ID())
		r.order = slices.DeleteFunc(r.order, func(id string) bool { return id == rule.ID() })
	}

	r.rules[rule.ID()] = rule
	r.order = append(r.order, rule.ID())

	r.logger.InfoContext(context.Background(), "Registered rule",
		"rule_id", rule.ID(), "kind", rule.Kind(), "priority", rule.Priority(), "enabled", rule.Enabled())
}

// Unregister removes the rule with id and reports whether it existed.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[id]; !exists {
		return false
	}

	delete(r.rules, id)
	r.order = slices.DeleteFunc(r.order, func(existing string) bool { return existing == id })

	r.logger.InfoContext(context.Background(), "Unregistered rule", "rule_id", id)
	return true
}

// Get returns the rule registered under id, enabled or not.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	return rule, ok
}

// Enable turns the rule on. It returns false for unknown ids.
func (r *Registry) Enable(id string) bool {
	return r.setEnabled(id, true)
}

// Disable turns the rule off. It returns false for unknown ids.
func (r *Registry) Disable(id string) bool {
	return r.setEnabled(id, false)
}

func (r *Registry) setEnabled(id string, enabled bool) bool {
	rule, ok := r.Get(id)
	if !ok {
		return false
	}

	rule.SetEnabled(enabled)
	r.logger.InfoContext(context.Background(), "Rule toggled", "rule_id", id, "enabled", enabled)
	return true
}

// AllEnabled returns the enabled rules in registration order.
func (r *Registry) AllEnabled() []Rule {
	return r.collect(func(rule Rule) bool { return rule.Enabled() })
}

// ByKind returns the enabled rules of kind in registration order.
func (r *Registry) ByKind(kind Kind) []Rule {
	return r.collect(func(rule Rule) bool { return rule.Enabled() && rule.Kind() == kind })
}

// Applicable returns the enabled rules whose AppliesTo accepts ctx, in
// registration order. With kinds given, only rules of those kinds are considered.
func (r *Registry) Applicable(ctx Context, kinds ...Kind) []Rule {
	candidates := r.collect(func(rule Rule) bool {
		return rule.Enabled() && (len(kinds) == 0 || slices.Contains(kinds, rule.Kind()))
	})

	applicable := make([]Rule, 0, len(candidates))
	for _, rule := range candidates {
		if r.appliesTo(rule, ctx) {
			applicable = append(applicable, rule)
		}
	}
	return applicable
}

// Infos describes every registered rule in registration order.
func (r *Registry) Infos() []Info {
	all := r.collect(func(Rule) bool { return true })

	infos := make([]Info, 0, len(all))
	for _, rule := range all {
		infos = append(infos, InfoOf(rule))
	}
	return infos
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

func (r *Registry) collect(keep func(Rule) bool) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		if rule := r.rules[id]; keep(rule) {
			out = append(out, rule)
		}
	}
	return out
}

// appliesTo treats a panicking predicate as not applicable.
func (r *Registry) appliesTo(rule Rule, ctx Context) (applies bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(context.Background(), "Rule predicate panicked", "rule_id", rule.ID(), "panic", rec)
			applies = false
		}
	}()

	return rule.AppliesTo(ctx)
}
