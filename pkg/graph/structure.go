package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// =============================================================================
// Collections
// =============================================================================

// List is an ordered collection of values.
type List []Value

// GValue implements Valuer.
func (l List) GValue() Value { return Value{kind: KindList, v: l} }

// Set is a collection of values the server treats as unordered.
type Set []Value

// GValue implements Valuer.
func (s Set) GValue() Value { return Value{kind: KindSet, v: List(s)} }

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an insertion-ordered map whose keys may be any Value.
// Keys such as vertices appear in group() and groupCount() results.
type Map struct {
	entries []MapEntry
}

// NewMap creates a Map from entries. Later duplicates replace earlier ones.
func NewMap(entries ...MapEntry) Map {
	var m Map
	for _, e := range entries {
		m.Put(e.Key, e.Value)
	}
	return m
}

// Len returns the number of entries.
func (m Map) Len() int { return len(m.entries) }

// Entries returns a copy of the entries in insertion order.
func (m Map) Entries() []MapEntry { return slices.Clone(m.entries) }

// Keys returns the keys in insertion order.
func (m Map) Keys() []Value {
	keys := make([]Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the value stored under key.
func (m Map) Get(key Valuer) (Value, bool) {
	k := key.GValue()
	for _, e := range m.entries {
		if e.Key.Equal(k) {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Put stores value under key, replacing an existing entry in place.
func (m *Map) Put(key, value Valuer) {
	k, v := key.GValue(), value.GValue()
	for i, e := range m.entries {
		if e.Key.Equal(k) {
			m.entries[i].Value = v
			return
		}
	}
	m.entries = append(m.entries, MapEntry{Key: k, Value: v})
}

// GValue implements Valuer.
func (m Map) GValue() Value { return Value{kind: KindMap, v: m} }

// String formats the map as {k: v, ...}.
func (m Map) String() string {
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

// =============================================================================
// Elements
// =============================================================================

// Vertex is a graph vertex.
type Vertex struct {
	ID         Value
	Label      string
	Properties map[string][]VertexProperty
}

// GValue implements Valuer.
func (v Vertex) GValue() Value { return Value{kind: KindVertex, v: v} }

// Property returns the first value of the property key, if present.
func (v Vertex) Property(key string) (Value, bool) {
	props := v.Properties[key]
	if len(props) == 0 {
		return Value{}, false
	}
	return props[0].Value, true
}

// String formats the vertex as v[id].
func (v Vertex) String() string { return "v[" + v.ID.String() + "]" }

// Edge is a graph edge from OutV to InV.
type Edge struct {
	ID         Value
	Label      string
	OutV       Vertex
	InV        Vertex
	Properties map[string]Property
}

// GValue implements Valuer.
func (e Edge) GValue() Value { return Value{kind: KindEdge, v: e} }

// String formats the edge as e[id][out-label->in].
func (e Edge) String() string {
	return fmt.Sprintf("e[%s][%s-%s->%s]", e.ID, e.OutV.ID, e.Label, e.InV.ID)
}

// VertexProperty is a property attached to a vertex.
type VertexProperty struct {
	ID    Value
	Label string
	Value Value
}

// GValue implements Valuer.
func (p VertexProperty) GValue() Value { return Value{kind: KindVertexProperty, v: p} }

// String formats the property as vp[label->value].
func (p VertexProperty) String() string { return "vp[" + p.Label + "->" + p.Value.String() + "]" }

// Property is a key/value property attached to an edge or a vertex property.
type Property struct {
	Key   string
	Value Value
}

// GValue implements Valuer.
func (p Property) GValue() Value { return Value{kind: KindProperty, v: p} }

// String formats the property as p[key->value].
func (p Property) String() string { return "p[" + p.Key + "->" + p.Value.String() + "]" }

// GProperty is one result of properties(): a VertexProperty when the
// traverser sits on a vertex, a Property when it sits on an edge.
type GProperty struct {
	Either2[VertexProperty, Property]
}

// OfVertexProperty wraps a vertex property.
func OfVertexProperty(p VertexProperty) GProperty {
	return GProperty{Left[VertexProperty, Property](p)}
}

// OfProperty wraps an edge or meta property.
func OfProperty(p Property) GProperty {
	return GProperty{Right[VertexProperty](p)}
}

// Key returns the property key. For a vertex property this is its label.
func (p GProperty) Key() string {
	if vp, ok := p.Left(); ok {
		return vp.Label
	}
	pr, _ := p.Right()
	return pr.Key
}

// Value returns the property value.
func (p GProperty) Value() Value {
	if vp, ok := p.Left(); ok {
		return vp.Value
	}
	pr, _ := p.Right()
	return pr.Value
}

// String formats the active case.
func (p GProperty) String() string { return p.GValue().String() }

// Path is the history of objects a traverser visited, with the step labels
// attached at each position.
type Path struct {
	Labels  [][]string
	Objects List
}

// GValue implements Valuer.
func (p Path) GValue() Value { return Value{kind: KindPath, v: p} }

// Len returns the number of objects on the path.
func (p Path) Len() int { return len(p.Objects) }

// Get returns the object labelled alias, if any.
func (p Path) Get(alias string) (Value, bool) {
	for i, labels := range p.Labels {
		if slices.Contains(labels, alias) && i < len(p.Objects) {
			return p.Objects[i], true
		}
	}
	return Value{}, false
}

// String formats the path as path[a, b, ...].
func (p Path) String() string { return "path" + formatList(p.Objects) }
