package traversal

import (
	"slices"

	"github.com/matzehuels/gremlin/pkg/graph"
)

// HasStep holds the arguments of a has() step.
type HasStep struct{ params []graph.Value }

// HasKey filters elements that have the property key.
func HasKey(key string) HasStep {
	return HasStep{params: []graph.Value{graph.String(key).GValue()}}
}

// HasValue filters elements whose property key matches v. v may be a
// predicate such as graph.Gt(graph.Int32(30)).
func HasValue(key string, v graph.Valuer) HasStep {
	return HasStep{params: []graph.Value{graph.String(key).GValue(), v.GValue()}}
}

// HasLabelValue filters elements with the label whose property key matches v.
func HasLabelValue(label, key string, v graph.Valuer) HasStep {
	return HasStep{params: []graph.Value{
		graph.String(label).GValue(),
		graph.String(key).GValue(),
		v.GValue(),
	}}
}

// HasToken filters elements whose id, label, key or value matches v.
func HasToken(t graph.T, v graph.Valuer) HasStep {
	return HasStep{params: []graph.Value{t.GValue(), v.GValue()}}
}

// Params returns the step arguments in order.
func (s HasStep) Params() []graph.Value { return slices.Clone(s.params) }

// ByStep holds the arguments of a by() modulator.
type ByStep struct{ params []graph.Value }

// ByIdentity modulates by the element itself.
func ByIdentity() ByStep { return ByStep{} }

// ByKey modulates by a property key.
func ByKey(key string) ByStep {
	return ByStep{params: []graph.Value{graph.String(key).GValue()}}
}

// ByToken modulates by an element token such as graph.TLabel.
func ByToken(t graph.T) ByStep {
	return ByStep{params: []graph.Value{t.GValue()}}
}

// ByOrder modulates an order() step by direction.
func ByOrder(o graph.Order) ByStep {
	return ByStep{params: []graph.Value{o.GValue()}}
}

// ByKeyOrder modulates an order() step by a property key and direction.
func ByKeyOrder(key string, o graph.Order) ByStep {
	return ByStep{params: []graph.Value{graph.String(key).GValue(), o.GValue()}}
}

// Params returns the step arguments in order.
func (s ByStep) Params() []graph.Value { return slices.Clone(s.params) }

// SelectStep holds the arguments of a select() step.
type SelectStep struct{ params []graph.Value }

// SelectKeys selects the objects labelled with as() or the map entries
// stored under keys.
func SelectKeys(keys ...string) SelectStep {
	return SelectStep{params: graph.Strings(keys)}
}

// Params returns the step arguments in order.
func (s SelectStep) Params() []graph.Value { return slices.Clone(s.params) }
