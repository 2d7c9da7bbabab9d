package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/graphson"
	"github.com/matzehuels/gremlin/pkg/gremlintest"
	"github.com/matzehuels/gremlin/pkg/render/dot"
)

// run executes the CLI with args and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// serve starts a fake server and returns the flags that point the CLI at it.
func serve(t *testing.T, h gremlintest.Handler) (*gremlintest.Server, []string) {
	t.Helper()
	srv := gremlintest.NewServer(h)
	t.Cleanup(srv.Close)
	host, port := srv.Addr()
	return srv, []string{"--host", host, "--port", strconv.Itoa(port), "--no-cache"}
}

func lastTraversal(t *testing.T, srv *gremlintest.Server) string {
	t.Helper()
	reqs := srv.Requests()
	if len(reqs) == 0 {
		t.Fatal("server saw no requests")
	}
	bc, ok := reqs[len(reqs)-1].Bytecode()
	if !ok {
		t.Fatal("last request carried no bytecode")
	}
	return bc.String()
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want graph.Value
	}{
		{"1", graph.Int64(1).GValue()},
		{"-42", graph.Int64(-42).GValue()},
		{"abc", graph.String("abc").GValue()},
		{"4:12:0", graph.String("4:12:0").GValue()},
	}
	for _, tt := range tests {
		if got := parseID(tt.in).GValue(); !got.Equal(tt.want) {
			t.Errorf("parseID(%q) = %v (%s), want %v", tt.in, got, got.Kind(), tt.want)
		}
	}
}

func TestOptionsFromFlagsAndConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gremlin.toml")
	config := "host = \"graph.internal\"\nport = 9000\npool_size = 4\n"
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.configPath = path
	opts, err := c.options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Host != "graph.internal" || opts.Port != 9000 || opts.PoolSize != 4 {
		t.Errorf("options from config = %s:%d pool %d", opts.Host, opts.Port, opts.PoolSize)
	}
	if opts.Logger != c.Logger {
		t.Error("options should carry the CLI logger")
	}

	c.host, c.port = "override", 8183
	opts, err = c.options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Host != "override" || opts.Port != 8183 {
		t.Errorf("flags should override config, got %s:%d", opts.Host, opts.Port)
	}
}

func TestOptionsInvalid(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.port = 70000
	_, err := c.options()
	if code := gerrors.GetCode(err); code != gerrors.ErrCodeConfig {
		t.Errorf("code = %v, want %v (err %v)", code, gerrors.ErrCodeConfig, err)
	}
}

func TestPing(t *testing.T) {
	srv, flags := serve(t, func(graphson.Request) []graphson.Response {
		return gremlintest.Reply(graph.Int64(1))
	})
	out, err := run(t, append([]string{"ping"}, flags...)...)
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if !strings.Contains(out, "answered in") {
		t.Errorf("output = %q", out)
	}
	if got := lastTraversal(t, srv); got != "V[].limit[1].count[]" {
		t.Errorf("server saw %q", got)
	}
}

func TestPingUnreachable(t *testing.T) {
	srv := gremlintest.NewServer(nil)
	host, port := srv.Addr()
	srv.Close()

	_, err := run(t, "ping", "--host", host, "--port", strconv.Itoa(port))
	if code := gerrors.GetCode(err); code != gerrors.ErrCodeTransport {
		t.Errorf("code = %v, want %v (err %v)", code, gerrors.ErrCodeTransport, err)
	}
}

func TestCount(t *testing.T) {
	srv, flags := serve(t, func(graphson.Request) []graphson.Response {
		return gremlintest.Reply(graph.Int64(42))
	})

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"count"}, "V[].count[]"},
		{[]string{"count", "--label", "person"}, "V[].hasLabel[person].count[]"},
	}
	for _, tt := range tests {
		out, err := run(t, append(tt.args, flags...)...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if strings.TrimSpace(out) != "42" {
			t.Errorf("%v printed %q, want 42", tt.args, out)
		}
		if got := lastTraversal(t, srv); got != tt.want {
			t.Errorf("%v sent %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestCountServerError(t *testing.T) {
	_, flags := serve(t, func(graphson.Request) []graphson.Response {
		return gremlintest.Fail(graphson.StatusServerError, "boom")
	})
	_, err := run(t, append([]string{"count"}, flags...)...)
	if code := gerrors.GetCode(err); code != gerrors.ErrCodeRequest {
		t.Errorf("code = %v, want %v (err %v)", code, gerrors.ErrCodeRequest, err)
	}
}

func labelMap() graph.Map {
	return graph.NewMap(
		graph.MapEntry{Key: graph.String("software").GValue(), Value: graph.Int64(2).GValue()},
		graph.MapEntry{Key: graph.String("person").GValue(), Value: graph.Int64(4).GValue()},
		graph.MapEntry{Key: graph.String("city").GValue(), Value: graph.Int64(2).GValue()},
	)
}

func TestLabels(t *testing.T) {
	srv, flags := serve(t, func(graphson.Request) []graphson.Response {
		return gremlintest.Reply(labelMap())
	})
	out, err := run(t, append([]string{"labels"}, flags...)...)
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	person := strings.Index(out, "person")
	city := strings.Index(out, "city")
	software := strings.Index(out, "software")
	if person < 0 || city < 0 || software < 0 {
		t.Fatalf("output missing labels:\n%s", out)
	}
	if !(person < city && city < software) {
		t.Errorf("labels should be ordered by count then name:\n%s", out)
	}
	if got := lastTraversal(t, srv); got != "V[].groupCount[].by[label]" {
		t.Errorf("server saw %q", got)
	}
}

func TestLabelsEmptyGraph(t *testing.T) {
	_, flags := serve(t, func(graphson.Request) []graphson.Response {
		return gremlintest.Reply(graph.Map{})
	})
	out, err := run(t, append([]string{"labels"}, flags...)...)
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	if !strings.Contains(out, "Graph is empty") {
		t.Errorf("output = %q", out)
	}
}

func knows(id, from, to int64) graph.Edge {
	return graph.Edge{
		ID:    graph.Int64(id).GValue(),
		Label: "knows",
		OutV:  graph.Vertex{ID: graph.Int64(from).GValue(), Label: "person"},
		InV:   graph.Vertex{ID: graph.Int64(to).GValue(), Label: "person"},
	}
}

func TestNeighbors(t *testing.T) {
	srv, flags := serve(t, func(graphson.Request) []graphson.Response {
		return gremlintest.Reply(knows(7, 1, 2), knows(8, 1, 4))
	})
	path := filepath.Join(t.TempDir(), "out.dot")

	args := append([]string{"neighbors", "1", "--edge", "knows", "--output", path}, flags...)
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("neighbors: %v", err)
	}
	if got := lastTraversal(t, srv); got != "V[1].bothE[knows]" {
		t.Errorf("server saw %q", got)
	}
	for _, want := range []string{"e[7][1-knows->2]", "e[8][1-knows->4]", path} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("output file is not DOT:\n%s", data)
	}
}

func TestNeighborsNone(t *testing.T) {
	_, flags := serve(t, func(graphson.Request) []graphson.Response {
		return gremlintest.NoContent()
	})
	out, err := run(t, append([]string{"neighbors", "x"}, flags...)...)
	if err != nil {
		t.Fatalf("neighbors: %v", err)
	}
	if !strings.Contains(out, "No edges around x") {
		t.Errorf("output = %q", out)
	}
}

func TestWriteGraphUnsupportedFormat(t *testing.T) {
	g := dot.NewGraph()
	g.Add(knows(1, 1, 2).GValue())
	path := filepath.Join(t.TempDir(), "out.png")
	err := writeGraph(context.Background(), g, path, dot.Options{})
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("err = %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written for an unsupported format")
	}
}

func TestCacheServesRepeatedTraversals(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	srv := gremlintest.NewServer(func(graphson.Request) []graphson.Response {
		return gremlintest.Reply(graph.Int64(5))
	})
	t.Cleanup(srv.Close)
	host, port := srv.Addr()
	flags := []string{"--host", host, "--port", strconv.Itoa(port)}

	for range 2 {
		out, err := run(t, append([]string{"count"}, flags...)...)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if strings.TrimSpace(out) != "5" {
			t.Errorf("count printed %q", out)
		}
	}
	if n := len(srv.Requests()); n != 1 {
		t.Errorf("server saw %d requests, want 1 (second answered from cache)", n)
	}

	out, err := run(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 1 cached results") {
		t.Errorf("cache clear printed %q", out)
	}
}
