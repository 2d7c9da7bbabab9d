package traversal

import (
	"context"
	"errors"
	"testing"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
)

// fixed returns a strategy that records the bytecode it sees and answers with values.
func fixed(seen *Bytecode, values ...graph.Value) Strategy {
	return StrategyFunc(func(ctx context.Context, bc Bytecode) (Results, error) {
		if seen != nil {
			*seen = bc
		}
		return Slice(values), nil
	})
}

func TestToList(t *testing.T) {
	var seen Bytecode
	g := NewSource(NewStrategies(fixed(&seen, graph.String("marko").GValue(), graph.String("josh").GValue())))

	names, err := g.V().Label().ToList(context.Background())
	if err != nil {
		t.Fatalf("ToList() error: %v", err)
	}
	if len(names) != 2 || names[0] != "marko" || names[1] != "josh" {
		t.Errorf("ToList() = %v", names)
	}
	if seen.String() != "V[].label[]" {
		t.Errorf("strategy saw %s", seen.String())
	}
}

func TestToListCount(t *testing.T) {
	g := NewSource(NewStrategies(fixed(nil, graph.Int64(6).GValue())))

	counts, err := g.V().Count().ToList(context.Background())
	if err != nil {
		t.Fatalf("ToList() error: %v", err)
	}
	if len(counts) != 1 || counts[0] != 6 {
		t.Errorf("ToList() = %v, want [6]", counts)
	}
}

func TestToListCastError(t *testing.T) {
	g := NewSource(NewStrategies(fixed(nil, graph.Int64(1).GValue())))

	_, err := g.V().Label().ToList(context.Background())
	if !gerrors.Is(err, gerrors.ErrCodeCast) {
		t.Fatalf("ToList() error = %v, want CAST", err)
	}
	var castErr *graph.CastError
	if !errors.As(err, &castErr) {
		t.Errorf("error should wrap *graph.CastError, got %T", err)
	}
}

func TestToListPropagatesFailure(t *testing.T) {
	boom := gerrors.Closed(gerrors.ConnectionClosed, nil)
	g := NewSource(NewStrategies(StrategyFunc(func(ctx context.Context, bc Bytecode) (Results, error) {
		return func(yield func(graph.Value, error) bool) {
			if !yield(graph.Int64(1).GValue(), nil) {
				return
			}
			yield(graph.Value{}, boom)
		}, nil
	})))

	got, err := g.V().Count().ToList(context.Background())
	if !gerrors.IsRecoverable(err) {
		t.Errorf("ToList() error = %v, want recoverable", err)
	}
	if got != nil {
		t.Errorf("ToList() must not return partial results, got %v", got)
	}
}

func TestStrategyErrorReturned(t *testing.T) {
	want := gerrors.New(gerrors.ErrCodeChannelSend, "writer gone")
	g := NewSource(NewStrategies(StrategyFunc(func(ctx context.Context, bc Bytecode) (Results, error) {
		return nil, want
	})))

	if _, err := g.V().ToList(context.Background()); err != want {
		t.Errorf("ToList() error = %v, want %v", err, want)
	}
}

func TestNoStrategy(t *testing.T) {
	tests := []struct {
		name string
		s    *Strategies
	}{
		{"nil chain", nil},
		{"empty chain", NewStrategies()},
		{"pass-through only", NewStrategies(StrategyFunc(func(context.Context, Bytecode) (Results, error) { return nil, nil }))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource(tt.s).V().ToList(context.Background())
			if !errors.Is(err, ErrNoStrategy) {
				t.Errorf("ToList() error = %v, want ErrNoStrategy", err)
			}
		})
	}
}

func TestStrategiesChainOrder(t *testing.T) {
	var calls []string
	pass := StrategyFunc(func(context.Context, Bytecode) (Results, error) {
		calls = append(calls, "pass")
		return nil, nil
	})
	answer := StrategyFunc(func(context.Context, Bytecode) (Results, error) {
		calls = append(calls, "answer")
		return Slice(nil), nil
	})
	never := StrategyFunc(func(context.Context, Bytecode) (Results, error) {
		calls = append(calls, "never")
		return Slice(nil), nil
	})

	s := NewStrategies(pass, nil, answer, never)
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (nil skipped)", s.Len())
	}
	if _, err := s.Apply(context.Background(), Bytecode{}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if len(calls) != 2 || calls[0] != "pass" || calls[1] != "answer" {
		t.Errorf("calls = %v", calls)
	}
}

func TestNext(t *testing.T) {
	g := NewSource(NewStrategies(fixed(nil, graph.Int64(3).GValue(), graph.Int64(4).GValue())))

	n, ok, err := g.V().Count().Next(context.Background())
	if err != nil || !ok || n != 3 {
		t.Errorf("Next() = %d, %v, %v; want 3, true, nil", n, ok, err)
	}

	empty := NewSource(NewStrategies(fixed(nil)))
	_, ok, err = empty.V().Next(context.Background())
	if err != nil || ok {
		t.Errorf("Next() on empty = %v, %v; want false, nil", ok, err)
	}
}

func TestIterate(t *testing.T) {
	var seen Bytecode
	g := NewSource(NewStrategies(fixed(&seen, graph.Vertex{}.GValue())))

	if err := g.AddV("person").Property("name", graph.String("marko")).Iterate(context.Background()); err != nil {
		t.Fatalf("Iterate() error: %v", err)
	}
	if seen.Len() != 2 {
		t.Errorf("strategy saw %d steps, want 2", seen.Len())
	}
}

func TestCollect(t *testing.T) {
	vals, err := Collect(Slice([]graph.Value{graph.Int32(1).GValue()}))
	if err != nil || len(vals) != 1 {
		t.Errorf("Collect() = %v, %v", vals, err)
	}

	boom := errors.New("boom")
	if _, err := Collect(Fail(boom)); err != boom {
		t.Errorf("Collect(Fail) error = %v, want boom", err)
	}
}

func TestToListProperties(t *testing.T) {
	weight := graph.Property{Key: "weight", Value: graph.Double(0.4).GValue()}
	name := graph.VertexProperty{ID: graph.Int64(0).GValue(), Label: "name", Value: graph.String("marko").GValue()}

	var seen Bytecode
	g := NewSource(NewStrategies(fixed(&seen, weight.GValue())))
	props, err := g.E().Properties("weight").ToList(context.Background())
	if err != nil {
		t.Fatalf("E().Properties().ToList() error: %v", err)
	}
	if seen.String() != "E[].properties[weight]" {
		t.Errorf("strategy saw %s", seen.String())
	}
	if len(props) != 1 || props[0].IsLeft() {
		t.Fatalf("ToList() = %v, want one edge property", props)
	}
	if props[0].Key() != "weight" || !props[0].Value().Equal(weight.Value) {
		t.Errorf("property = %s", props[0])
	}

	g = NewSource(NewStrategies(fixed(nil, name.GValue())))
	props, err = g.V().Properties("name").ToList(context.Background())
	if err != nil {
		t.Fatalf("V().Properties().ToList() error: %v", err)
	}
	if len(props) != 1 || !props[0].IsLeft() {
		t.Fatalf("ToList() = %v, want one vertex property", props)
	}
	if vp, _ := props[0].Left(); vp.Label != "name" || props[0].Key() != "name" {
		t.Errorf("property = %s", props[0])
	}
}
