package traversal

import (
	"context"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
)

// GraphTraversal is a typed traversal builder. S is the start type and E the
// end type; both are phantom markers with no runtime footprint.
//
// Builders are values. Step methods leave the receiver untouched and return
// a new builder around a private copy of the program.
type GraphTraversal[S, E any] struct {
	strategies *Strategies
	bytecode   Bytecode
}

// New creates a builder around bc. A builder with no steps is legal; whether
// executing it means anything is up to the strategies.
func New[S, E any](strategies *Strategies, bc Bytecode) GraphTraversal[S, E] {
	return GraphTraversal[S, E]{strategies: strategies, bytecode: bc.Clone()}
}

// Bytecode returns a copy of the accumulated program.
func (t GraphTraversal[S, E]) Bytecode() Bytecode { return t.bytecode.Clone() }

// step appends one instruction to a copy of t's program and rebinds the end type.
func step[E2, S, E any](t GraphTraversal[S, E], op string, args []graph.Value) GraphTraversal[S, E2] {
	bc := t.bytecode
	bc.AddStep(op, args)
	return GraphTraversal[S, E2]{strategies: t.strategies, bytecode: bc}
}

// =============================================================================
// Filters and side steps (end type unchanged)
// =============================================================================

// HasLabel appends hasLabel(labels...), keeping elements with one of the labels.
func (t GraphTraversal[S, E]) HasLabel(labels ...string) GraphTraversal[S, E] {
	return step[E](t, OpHasLabel, graph.Strings(labels))
}

// Has appends has(...) with the arguments of s, built by HasKey and friends.
func (t GraphTraversal[S, E]) Has(s HasStep) GraphTraversal[S, E] {
	return step[E](t, OpHas, s.params)
}

// HasNot appends hasNot(key), keeping elements without the property.
func (t GraphTraversal[S, E]) HasNot(key string) GraphTraversal[S, E] {
	return step[E](t, OpHasNot, []graph.Value{graph.String(key).GValue()})
}

// Property appends property(key, value), setting a property on the current element.
func (t GraphTraversal[S, E]) Property(key string, value graph.Valuer) GraphTraversal[S, E] {
	return step[E](t, OpProperty, []graph.Value{graph.String(key).GValue(), value.GValue()})
}

// As labels the current step so later steps can refer to it.
func (t GraphTraversal[S, E]) As(alias string) GraphTraversal[S, E] {
	return step[E](t, OpAs, []graph.Value{graph.String(alias).GValue()})
}

// From appends from(target), naming the out-vertex of an edge being added.
func (t GraphTraversal[S, E]) From(target graph.Either2[graph.String, graph.Vertex]) GraphTraversal[S, E] {
	return step[E](t, OpFrom, []graph.Value{target.GValue()})
}

// To appends to(target), naming the in-vertex of an edge being added.
func (t GraphTraversal[S, E]) To(target graph.Either2[graph.String, graph.Vertex]) GraphTraversal[S, E] {
	return step[E](t, OpTo, []graph.Value{target.GValue()})
}

// By appends a by() modulator for the preceding step.
func (t GraphTraversal[S, E]) By(s ByStep) GraphTraversal[S, E] {
	return step[E](t, OpBy, s.params)
}

// Limit appends limit(n).
func (t GraphTraversal[S, E]) Limit(n int64) GraphTraversal[S, E] {
	return step[E](t, OpLimit, []graph.Value{graph.Int64(n).GValue()})
}

// Dedup appends dedup(), dropping repeated traversers.
func (t GraphTraversal[S, E]) Dedup() GraphTraversal[S, E] {
	return step[E](t, OpDedup, nil)
}

// Order appends order(); follow it with By to pick the sort key.
func (t GraphTraversal[S, E]) Order() GraphTraversal[S, E] {
	return step[E](t, OpOrder, nil)
}

// Drop appends drop(), removing the current elements from the graph.
func (t GraphTraversal[S, E]) Drop() GraphTraversal[S, E] {
	return step[E](t, OpDrop, nil)
}

// =============================================================================
// Navigation
// =============================================================================

// AddV appends addV(labels...). The result starts and ends on Vertex.
func (t GraphTraversal[S, E]) AddV(labels ...string) GraphTraversal[graph.Vertex, graph.Vertex] {
	bc := t.bytecode
	bc.AddStep(OpAddV, graph.Strings(labels))
	return GraphTraversal[graph.Vertex, graph.Vertex]{strategies: t.strategies, bytecode: bc}
}

// AddE appends addE(label) and ends on Edge.
func (t GraphTraversal[S, E]) AddE(label string) GraphTraversal[S, graph.Edge] {
	return step[graph.Edge](t, OpAddE, []graph.Value{graph.String(label).GValue()})
}

// Out appends out(labels...) and ends on Vertex.
func (t GraphTraversal[S, E]) Out(labels ...string) GraphTraversal[S, graph.Vertex] {
	return step[graph.Vertex](t, OpOut, graph.Strings(labels))
}

// OutE appends outE(labels...) and ends on Edge.
func (t GraphTraversal[S, E]) OutE(labels ...string) GraphTraversal[S, graph.Edge] {
	return step[graph.Edge](t, OpOutE, graph.Strings(labels))
}

// OutV appends outV() and ends on Vertex.
func (t GraphTraversal[S, E]) OutV() GraphTraversal[S, graph.Vertex] {
	return step[graph.Vertex](t, OpOutV, nil)
}

// In appends in(labels...) and ends on Vertex.
func (t GraphTraversal[S, E]) In(labels ...string) GraphTraversal[S, graph.Vertex] {
	return step[graph.Vertex](t, OpIn, graph.Strings(labels))
}

// InE appends inE(labels...) and ends on Edge.
func (t GraphTraversal[S, E]) InE(labels ...string) GraphTraversal[S, graph.Edge] {
	return step[graph.Edge](t, OpInE, graph.Strings(labels))
}

// InV appends inV() and ends on Vertex.
func (t GraphTraversal[S, E]) InV() GraphTraversal[S, graph.Vertex] {
	return step[graph.Vertex](t, OpInV, nil)
}

// Both appends both(labels...) and ends on Vertex.
func (t GraphTraversal[S, E]) Both(labels ...string) GraphTraversal[S, graph.Vertex] {
	return step[graph.Vertex](t, OpBoth, graph.Strings(labels))
}

// BothE appends bothE(labels...) and ends on Edge.
func (t GraphTraversal[S, E]) BothE(labels ...string) GraphTraversal[S, graph.Edge] {
	return step[graph.Edge](t, OpBothE, graph.Strings(labels))
}

// =============================================================================
// Projections
// =============================================================================

// Label appends label() and ends on string.
func (t GraphTraversal[S, E]) Label() GraphTraversal[S, string] {
	return step[string](t, OpLabel, nil)
}

// ID appends id() and ends on Value, since ids may be of any type.
func (t GraphTraversal[S, E]) ID() GraphTraversal[S, graph.Value] {
	return step[graph.Value](t, OpID, nil)
}

// Properties appends properties(labels...) and ends on GProperty, which is a
// VertexProperty on vertices and a Property on edges.
func (t GraphTraversal[S, E]) Properties(labels ...string) GraphTraversal[S, graph.GProperty] {
	return step[graph.GProperty](t, OpProperties, graph.Strings(labels))
}

// PropertyMap appends propertyMap(labels...) and ends on Map.
func (t GraphTraversal[S, E]) PropertyMap(labels ...string) GraphTraversal[S, graph.Map] {
	return step[graph.Map](t, OpPropertyMap, graph.Strings(labels))
}

// Values appends values(labels...) and ends on Value.
func (t GraphTraversal[S, E]) Values(labels ...string) GraphTraversal[S, graph.Value] {
	return step[graph.Value](t, OpValues, graph.Strings(labels))
}

// Count appends count() and ends on int64.
func (t GraphTraversal[S, E]) Count() GraphTraversal[S, int64] {
	return step[int64](t, OpCount, nil)
}

// GroupCount appends groupCount() and ends on Map.
func (t GraphTraversal[S, E]) GroupCount() GraphTraversal[S, graph.Map] {
	return step[graph.Map](t, OpGroupCount, nil)
}

// Group appends group() and ends on Map.
func (t GraphTraversal[S, E]) Group() GraphTraversal[S, graph.Map] {
	return step[graph.Map](t, OpGroup, nil)
}

// Select appends select(...) and ends on Value.
func (t GraphTraversal[S, E]) Select(s SelectStep) GraphTraversal[S, graph.Value] {
	return step[graph.Value](t, OpSelect, s.params)
}

// Fold appends fold() and ends on List.
func (t GraphTraversal[S, E]) Fold() GraphTraversal[S, graph.List] {
	return step[graph.List](t, OpFold, nil)
}

// Path appends path() and ends on Path.
func (t GraphTraversal[S, E]) Path() GraphTraversal[S, graph.Path] {
	return step[graph.Path](t, OpPath, nil)
}

// =============================================================================
// Terminal calls
// =============================================================================

// ToList executes the traversal and returns every result converted to E.
// It returns either the complete result list or a single error.
func (t GraphTraversal[S, E]) ToList(ctx context.Context) ([]E, error) {
	res, err := t.strategies.Apply(ctx, t.bytecode)
	if err != nil {
		return nil, err
	}
	var out []E
	for v, err := range res {
		if err != nil {
			return nil, err
		}
		e, err := graph.As[E](v)
		if err != nil {
			return nil, gerrors.Wrap(gerrors.ErrCodeCast, err, "result %d", len(out))
		}
		out = append(out, e)
	}
	return out, nil
}

// Next executes the traversal and returns its first result. The boolean is
// false when the traversal produced nothing.
func (t GraphTraversal[S, E]) Next(ctx context.Context) (E, bool, error) {
	var zero E
	res, err := t.strategies.Apply(ctx, t.bytecode)
	if err != nil {
		return zero, false, err
	}
	for v, err := range res {
		if err != nil {
			return zero, false, err
		}
		e, err := graph.As[E](v)
		if err != nil {
			return zero, false, gerrors.Wrap(gerrors.ErrCodeCast, err, "result 0")
		}
		return e, true, nil
	}
	return zero, false, nil
}

// Iterate executes the traversal for its side effects and discards results.
func (t GraphTraversal[S, E]) Iterate(ctx context.Context) error {
	res, err := t.strategies.Apply(ctx, t.bytecode)
	if err != nil {
		return err
	}
	for _, err := range res {
		if err != nil {
			return err
		}
	}
	return nil
}
