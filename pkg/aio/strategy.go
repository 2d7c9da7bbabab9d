package aio

import (
	"context"

	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/traversal"
)

// Executor runs bytecode remotely. *Client implements it.
type Executor interface {
	Execute(ctx context.Context, bc traversal.Bytecode) ([]graph.Value, error)
}

// RemoteStrategy executes every traversal on a server. It always produces
// results, so it belongs at the end of a strategy chain.
type RemoteStrategy struct {
	exec Executor
}

// NewRemoteStrategy creates a strategy backed by exec.
func NewRemoteStrategy(exec Executor) *RemoteStrategy {
	return &RemoteStrategy{exec: exec}
}

// Apply implements traversal.Strategy.
func (s *RemoteStrategy) Apply(ctx context.Context, bc traversal.Bytecode) (traversal.Results, error) {
	values, err := s.exec.Execute(ctx, bc)
	if err != nil {
		return nil, err
	}
	return traversal.Slice(values), nil
}
