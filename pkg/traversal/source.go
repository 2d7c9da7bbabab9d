package traversal

import "github.com/matzehuels/gremlin/pkg/graph"

// GraphTraversalSource spawns traversals that share one strategy chain.
type GraphTraversalSource struct {
	strategies *Strategies
	bytecode   Bytecode
}

// NewSource creates a traversal source executing through strategies.
func NewSource(strategies *Strategies) GraphTraversalSource {
	return GraphTraversalSource{strategies: strategies}
}

// With adds a source-level configuration entry, such as an evaluation timeout.
func (g GraphTraversalSource) With(key string, value graph.Valuer) GraphTraversalSource {
	bc := g.bytecode
	bc.AddSource(OpWith, []graph.Value{graph.String(key).GValue(), value.GValue()})
	return GraphTraversalSource{strategies: g.strategies, bytecode: bc}
}

// Strategies returns the chain traversals from this source execute through.
func (g GraphTraversalSource) Strategies() *Strategies { return g.strategies }

// V starts a traversal over vertices, optionally restricted to ids.
func (g GraphTraversalSource) V(ids ...graph.Valuer) GraphTraversal[graph.Vertex, graph.Vertex] {
	return start[graph.Vertex, graph.Vertex](g, OpV, graph.Values(ids))
}

// E starts a traversal over edges, optionally restricted to ids.
func (g GraphTraversalSource) E(ids ...graph.Valuer) GraphTraversal[graph.Edge, graph.Edge] {
	return start[graph.Edge, graph.Edge](g, OpE, graph.Values(ids))
}

// AddV starts a traversal that adds a vertex.
func (g GraphTraversalSource) AddV(labels ...string) GraphTraversal[graph.Vertex, graph.Vertex] {
	return start[graph.Vertex, graph.Vertex](g, OpAddV, graph.Strings(labels))
}

// AddE starts a traversal that adds an edge.
func (g GraphTraversalSource) AddE(label string) GraphTraversal[graph.Edge, graph.Edge] {
	return start[graph.Edge, graph.Edge](g, OpAddE, []graph.Value{graph.String(label).GValue()})
}

func start[S, E any](g GraphTraversalSource, op string, args []graph.Value) GraphTraversal[S, E] {
	bc := g.bytecode.Clone()
	bc.AddStep(op, args)
	return GraphTraversal[S, E]{strategies: g.strategies, bytecode: bc}
}
