package rules_test

import (
	"testing"

	"ordermanager/internal/core/domain/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(rs []rules.Rule) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID())
	}
	return out
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should keep registration order", func(t *testing.T) {
		registry := rules.NewRegistry(discardLogger())
		registry.Register(newStubRule("b", rules.KindBusinessLogic, rules.PriorityLow))
		registry.Register(newStubRule("a", rules.KindBusinessLogic, rules.PriorityHigh))

		assert.Equal(t, []string{"b", "a"}, ids(registry.AllEnabled()))
		assert.Equal(t, 2, registry.Len())
	})

	t.Run("should replace existing id and move it last", func(t *testing.T) {
		registry := rules.NewRegistry(discardLogger())
		first := newStubRule("a", rules.KindBusinessLogic, rules.PriorityLow)
		replacement := newStubRule("a", rules.KindEnrichment, rules.PriorityLow)
		registry.Register(first)
		registry.Register(newStubRule("b", rules.KindBusinessLogic, rules.PriorityLow))
		registry.Register(replacement)

		got, ok := registry.Get("a")

		require.True(t, ok)
		assert.Same(t, replacement, got)
		assert.Equal(t, []string{"b", "a"}, ids(registry.AllEnabled()))
		assert.Equal(t, 2, registry.Len())
	})
}

func TestRegistry_Unregister(t *testing.T) {
	registry := rules.NewRegistry(discardLogger())
	registry.Register(newStubRule("a", rules.KindBusinessLogic, rules.PriorityLow))

	assert.True(t, registry.Unregister("a"))
	assert.False(t, registry.Unregister("a"))
	_, ok := registry.Get("a")
	assert.False(t, ok)
	assert.Empty(t, registry.Infos())
}

func TestRegistry_Toggle(t *testing.T) {
	registry := rules.NewRegistry(discardLogger())
	registry.Register(newStubRule("a", rules.KindBusinessLogic, rules.PriorityLow))
	ctx := pendingContext(10)

	t.Run("should remove disabled rule from applicable immediately", func(t *testing.T) {
		require.True(t, registry.Disable("a"))

		assert.Empty(t, registry.Applicable(ctx))
		assert.Empty(t, registry.ByKind(rules.KindBusinessLogic))
		assert.False(t, registry.Infos()[0].Enabled)
	})

	t.Run("should restore re-enabled rule", func(t *testing.T) {
		require.True(t, registry.Enable("a"))

		assert.Equal(t, []string{"a"}, ids(registry.Applicable(ctx)))
	})

	t.Run("should report unknown ids", func(t *testing.T) {
		assert.False(t, registry.Enable("missing"))
		assert.False(t, registry.Disable("missing"))
	})
}

func TestRegistry_Applicable(t *testing.T) {
	registry := rules.NewRegistry(discardLogger())
	small := newStubRule("small", rules.KindBusinessLogic, rules.PriorityMedium)
	small.applies = func(ctx rules.Context) bool { return ctx.Amount() <= 20 }
	panicking := newStubRule("panicking", rules.KindBusinessLogic, rules.PriorityMedium)
	panicking.applies = func(rules.Context) bool { panic("boom") }
	registry.Register(small)
	registry.Register(panicking)
	registry.Register(newStubRule("enrich", rules.KindEnrichment, rules.PriorityLow))

	t.Run("should filter by predicate", func(t *testing.T) {
		assert.Equal(t, []string{"small", "enrich"}, ids(registry.Applicable(pendingContext(15))))
		assert.Equal(t, []string{"enrich"}, ids(registry.Applicable(pendingContext(25))))
	})

	t.Run("should filter by kind", func(t *testing.T) {
		assert.Equal(t, []string{"enrich"}, ids(registry.Applicable(pendingContext(15), rules.KindEnrichment)))
	})
}

func TestRegistry_Infos(t *testing.T) {
	registry := rules.NewRegistry(discardLogger())
	r := newStubRule("a", rules.KindValidation, rules.PriorityCritical)
	r.SetEnabled(false)
	registry.Register(r)

	assert.Equal(t, []rules.Info{{
		ID:          "a",
		Description: "stub a",
		Kind:        rules.KindValidation,
		Priority:    rules.PriorityCritical,
		Enabled:     false,
	}}, registry.Infos())
}
