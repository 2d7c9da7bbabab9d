package cache

import (
	"context"
	"time"

	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/graphson"
	"github.com/matzehuels/gremlin/pkg/observability"
	"github.com/matzehuels/gremlin/pkg/traversal"
)

// keyType labels cache hook events.
const keyType = "traversal"

// TraversalKey returns the cache key for bc: a hash of its GraphSON form,
// so two programs share a key exactly when the server would see the same
// request.
func TraversalKey(bc traversal.Bytecode) (string, error) {
	data, err := graphson.EncodeBytecode(bc)
	if err != nil {
		return "", err
	}
	return keyType + ":" + Hash(data), nil
}

// Strategy answers read-only traversals from a cache and stores the results
// of misses, delegating the actual execution to next.
type Strategy struct {
	cache Cache
	ttl   time.Duration
	next  traversal.Strategy
}

// NewStrategy creates a caching strategy in front of next.
func NewStrategy(c Cache, ttl time.Duration, next traversal.Strategy) *Strategy {
	if c == nil {
		c = NewNullCache()
	}
	return &Strategy{cache: c, ttl: ttl, next: next}
}

// Apply implements traversal.Strategy.
//
// Cache read and write failures degrade to a miss; they never fail the
// traversal. Failed executions are not cached.
func (s *Strategy) Apply(ctx context.Context, bc traversal.Bytecode) (traversal.Results, error) {
	if !traversal.IsReadOnly(bc) {
		return s.next.Apply(ctx, bc)
	}
	key, err := TraversalKey(bc)
	if err != nil {
		return s.next.Apply(ctx, bc)
	}

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		if values, err := decodeResults(data); err == nil {
			observability.Cache().OnCacheHit(ctx, keyType)
			return traversal.Slice(values), nil
		}
		_ = s.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, keyType)

	res, err := s.next.Apply(ctx, bc)
	if err != nil || res == nil {
		return res, err
	}
	values, err := traversal.Collect(res)
	if err != nil {
		return traversal.Fail(err), nil
	}
	if data, err := graphson.EncodeValue(graph.List(values).GValue()); err == nil {
		if s.cache.Set(ctx, key, data, s.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, keyType, len(data))
		}
	}
	return traversal.Slice(values), nil
}

func decodeResults(data []byte) ([]graph.Value, error) {
	v, err := graphson.DecodeValue(data)
	if err != nil {
		return nil, err
	}
	return graph.As[graph.List](v)
}
