package traversal

import (
	"context"
	"errors"
	"iter"
	"slices"

	"github.com/matzehuels/gremlin/pkg/graph"
)

// ErrNoStrategy is returned when no strategy in the chain produced results.
var ErrNoStrategy = errors.New("no traversal strategy produced results")

// Results is a finite, single-use sequence of raw traversal results.
// A non-nil error ends the sequence.
type Results = iter.Seq2[graph.Value, error]

// Strategy executes bytecode.
//
// Apply returns nil results (and a nil error) to pass the bytecode on to the
// next strategy in the chain.
type Strategy interface {
	Apply(ctx context.Context, bc Bytecode) (Results, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(ctx context.Context, bc Bytecode) (Results, error)

// Apply calls f.
func (f StrategyFunc) Apply(ctx context.Context, bc Bytecode) (Results, error) {
	return f(ctx, bc)
}

// Strategies is an ordered, immutable chain of strategies shared by every
// traversal a client issues.
type Strategies struct {
	chain []Strategy
}

// NewStrategies creates a chain. Nil entries are skipped.
func NewStrategies(s ...Strategy) *Strategies {
	chain := make([]Strategy, 0, len(s))
	for _, st := range s {
		if st != nil {
			chain = append(chain, st)
		}
	}
	return &Strategies{chain: chain}
}

// Len returns the number of strategies in the chain.
func (s *Strategies) Len() int {
	if s == nil {
		return 0
	}
	return len(s.chain)
}

// Apply hands bc to each strategy in order until one produces results.
func (s *Strategies) Apply(ctx context.Context, bc Bytecode) (Results, error) {
	if s == nil {
		return nil, ErrNoStrategy
	}
	for _, st := range s.chain {
		res, err := st.Apply(ctx, bc)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
	return nil, ErrNoStrategy
}

// Slice returns results that yield values in order.
func Slice(values []graph.Value) Results {
	values = slices.Clone(values)
	return func(yield func(graph.Value, error) bool) {
		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Fail returns results that yield only err.
func Fail(err error) Results {
	return func(yield func(graph.Value, error) bool) {
		yield(graph.Value{}, err)
	}
}

// Collect drains results into a slice, stopping at the first error.
func Collect(res Results) ([]graph.Value, error) {
	var out []graph.Value
	for v, err := range res {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
