package aio

import (
	"context"
	"slices"
	"testing"
	"time"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/graphson"
	"github.com/matzehuels/gremlin/pkg/gremlintest"
	"github.com/matzehuels/gremlin/pkg/traversal"
)

func dialClient(t *testing.T, opts Options) *Client {
	t.Helper()
	c, err := Dial(context.Background(), opts)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClientPool(t *testing.T) {
	srv, opts := startServer(t, func(graphson.Request) []graphson.Response {
		return gremlintest.Reply(graph.Int64(3))
	})
	opts.PoolSize = 3
	c := dialClient(t, opts)

	if n := srv.Connections(); n != 3 {
		t.Errorf("server connections = %d, want 3", n)
	}
	for range 6 {
		var bc traversal.Bytecode
		bc.AddStep("V", nil)
		bc.AddStep("count", nil)
		got, err := c.Execute(context.Background(), bc)
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("got %v", got)
		}
	}
	if n := len(srv.Requests()); n != 6 {
		t.Errorf("server saw %d requests, want 6", n)
	}
}

func TestClientReconnectsAfterPeerClose(t *testing.T) {
	srv, opts := startServer(t, func(graphson.Request) []graphson.Response {
		return gremlintest.Reply(graph.String("ok"))
	})
	c := dialClient(t, opts)

	var bc traversal.Bytecode
	bc.AddStep("V", nil)
	if _, err := c.Execute(context.Background(), bc); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	srv.DropConnections()
	deadline := time.Now().Add(2 * time.Second)
	for c.slots[0].conn.Err() == nil {
		if time.Now().After(deadline) {
			t.Fatal("connection never noticed the peer close")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !gerrors.IsRecoverable(c.slots[0].conn.Err()) {
		t.Fatalf("Err = %v, want recoverable", c.slots[0].conn.Err())
	}

	got, err := c.Execute(context.Background(), bc)
	if err != nil {
		t.Fatalf("Execute after reconnect: %v", err)
	}
	if len(got) != 1 || got[0].String() != "ok" {
		t.Errorf("got %v", got)
	}
}

func TestClientClosed(t *testing.T) {
	_, opts := startServer(t, func(graphson.Request) []graphson.Response { return gremlintest.NoContent() })
	c := dialClient(t, opts)
	c.Close()

	_, err := c.Execute(context.Background(), traversal.Bytecode{})
	if !gerrors.Is(err, gerrors.ErrCodePool) {
		t.Errorf("err = %v, want POOL", err)
	}
}

func TestDialRefused(t *testing.T) {
	srv, opts := startServer(t, func(graphson.Request) []graphson.Response { return nil })
	srv.Close()

	_, err := Dial(context.Background(), opts)
	if !gerrors.Is(err, gerrors.ErrCodeTransport) {
		t.Errorf("err = %v, want TRANSPORT", err)
	}
}

func TestDialInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Port = -1
	if _, err := Dial(context.Background(), opts); !gerrors.Is(err, gerrors.ErrCodeConfig) {
		t.Errorf("err = %v, want CONFIG", err)
	}
}

func TestRemoteStrategy(t *testing.T) {
	srv, opts := startServer(t, func(req graphson.Request) []graphson.Response {
		return gremlintest.Reply(graph.String("marko"), graph.String("josh"))
	})
	c := dialClient(t, opts)

	g := traversal.NewSource(traversal.NewStrategies(NewRemoteStrategy(c)))
	values, err := g.V().HasLabel("person").Values("name").ToList(context.Background())
	if err != nil {
		t.Fatalf("ToList: %v", err)
	}
	var names []string
	for _, v := range values {
		names = append(names, v.String())
	}
	if !slices.Equal(names, []string{"marko", "josh"}) {
		t.Errorf("names = %v", names)
	}

	bc, ok := srv.Requests()[0].Bytecode()
	if !ok {
		t.Fatal("request carried no bytecode")
	}
	if got := bc.String(); got != "V[].hasLabel[person].values[name]" {
		t.Errorf("server saw %s", got)
	}
}

func TestRemoteStrategyError(t *testing.T) {
	_, opts := startServer(t, func(graphson.Request) []graphson.Response {
		return gremlintest.Fail(graphson.StatusServerError, "boom")
	})
	c := dialClient(t, opts)

	g := traversal.NewSource(traversal.NewStrategies(NewRemoteStrategy(c)))
	_, err := g.V().Count().ToList(context.Background())
	if !gerrors.Is(err, gerrors.ErrCodeRequest) {
		t.Errorf("err = %v, want REQUEST", err)
	}
}
