package rules

import (
	"sync/atomic"

	"ordermanager/internal/core/domain/model/order"
)

// Rule is a unit of business policy.
//
// AppliesTo must be a pure predicate over the context. Execute runs only when
// AppliesTo returned true. Kind and Priority drive ordering only.
type Rule interface {
	ID() string
	Description() string
	Kind() Kind
	Priority() Priority
	Enabled() bool
	SetEnabled(enabled bool)
	AppliesTo(ctx Context) bool
	Execute(ctx Context) (Result, error)
}

// EventFilter is a rule that transforms the list of events offered for an order.
// Implementations receive their own copy of the list.
type EventFilter interface {
	Rule
	FilterEvents(events []order.Event, ctx Context) ([]order.Event, error)
}

// Info describes a registered rule.
type Info struct {
	ID          string
	Description string
	Kind        Kind
	Priority    Priority
	Enabled     bool
}

// Base carries the identity of a rule and its enabled flag. Concrete rules embed
// a *Base and implement AppliesTo and Execute.
type Base struct {
	id          string
	description string
	kind        Kind
	priority    Priority
	enabled     atomic.Bool
}

// NewBase creates the shared rule fields.
func NewBase(id, description string, kind Kind, priority Priority, enabled bool) *Base {
	b := &Base{
		id:          id,
		description: description,
		kind:        kind,
		priority:    priority,
	}
	b.enabled.Store(enabled)
	return b
}

func (b *Base) ID() string {
	return b.id
}

func (b *Base) Description() string {
	return b.description
}

func (b *Base) Kind() Kind {
	return b.kind
}

func (b *Base) Priority() Priority {
	return b.priority
}

func (b *Base) Enabled() bool {
	return b.enabled.Load()
}

func (b *Base) SetEnabled(enabled bool) {
	b.enabled.Store(enabled)
}

// FilterBase is embedded by event filters. Executing a filter succeeds without
// effects; its work happens in FilterEvents.
type FilterBase struct {
	*Base
}

// NewFilterBase creates the shared fields of an event filter.
func NewFilterBase(id, description string, priority Priority, enabled bool) FilterBase {
	return FilterBase{Base: NewBase(id, description, KindEventFilter, priority, enabled)}
}

func (FilterBase) Execute(Context) (Result, error) {
	return Result{Success: true}, nil
}

// InfoOf describes r for listings.
func InfoOf(r Rule) Info {
	return Info{
		ID:          r.ID(),
		Description: r.Description(),
		Kind:        r.Kind(),
		Priority:    r.Priority(),
		Enabled:     r.Enabled(),
	}
}
