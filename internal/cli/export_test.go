package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/graphson"
	"github.com/matzehuels/gremlin/pkg/gremlintest"
)

func TestExportCollectionName(t *testing.T) {
	tests := []struct {
		opts exportOptions
		want string
	}{
		{exportOptions{}, "vertices"},
		{exportOptions{label: "person"}, "person"},
		{exportOptions{label: "person", collection: "people"}, "people"},
	}
	for _, tt := range tests {
		if got := tt.opts.collectionName(); got != tt.want {
			t.Errorf("collectionName(%+v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestExportNothing(t *testing.T) {
	srv, flags := serve(t, func(graphson.Request) []graphson.Response {
		return gremlintest.NoContent()
	})
	args := append([]string{"export", "--label", "person", "--limit", "10"}, flags...)
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Nothing to export") {
		t.Errorf("output = %q", out)
	}
	if got := lastTraversal(t, srv); got != "V[].hasLabel[person].limit[10]" {
		t.Errorf("server saw %q", got)
	}
}

func TestPrintVertices(t *testing.T) {
	vx := graph.Vertex{
		ID:    graph.Int64(1).GValue(),
		Label: "person",
		Properties: map[string][]graph.VertexProperty{
			"name": {{Label: "name", Value: graph.String("marko").GValue()}},
			"age":  {{Label: "age", Value: graph.Int32(29).GValue()}},
		},
	}
	var buf strings.Builder
	printVertices(&buf, []graph.Vertex{vx})

	out := buf.String()
	for _, want := range []string{"v[1]", "person", "age=29 name=marko"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
