package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/gremlin/pkg/graph"
)

func vertex(id int64, label string) graph.Vertex {
	return graph.Vertex{ID: graph.Int64(id).GValue(), Label: label}
}

func TestFromValuesCollectsEdges(t *testing.T) {
	marko, vadas := vertex(1, "person"), vertex(2, "person")
	knows := graph.Edge{ID: graph.Int64(7).GValue(), Label: "knows", OutV: marko, InV: vadas}

	g := FromValues([]graph.Value{marko.GValue(), knows.GValue(), graph.String("ignored").GValue()})
	if v, e := g.Len(); v != 2 || e != 1 {
		t.Fatalf("Len = %d, %d; want 2, 1", v, e)
	}

	src := ToDOT(g, Options{})
	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"1" [label="person 1"];`,
		`"2" [label="person 2"];`,
		`"1" -> "2" [label="knows"];`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("DOT missing %q:\n%s", want, src)
		}
	}
}

func TestPathLinksConsecutiveVertices(t *testing.T) {
	p := graph.Path{
		Labels:  [][]string{{}, {}, {}},
		Objects: graph.List{vertex(1, "person").GValue(), vertex(3, "software").GValue(), graph.String("lop").GValue()},
	}
	g := FromValues([]graph.Value{p.GValue()})
	if v, e := g.Len(); v != 2 || e != 1 {
		t.Fatalf("Len = %d, %d; want 2, 1", v, e)
	}
	if src := ToDOT(g, Options{Horizontal: true}); !strings.Contains(src, `"1" -> "3";`) || !strings.Contains(src, "rankdir=LR;") {
		t.Errorf("unexpected DOT:\n%s", src)
	}
}

func TestDuplicateEdgesCollapse(t *testing.T) {
	e := graph.Edge{Label: "knows", OutV: vertex(1, "person"), InV: vertex(2, "person")}
	g := FromValues([]graph.Value{graph.List{e.GValue(), e.GValue()}.GValue()})
	if _, n := g.Len(); n != 1 {
		t.Errorf("edges = %d, want 1", n)
	}
}

func TestDetailedLabel(t *testing.T) {
	vx := vertex(1, "person")
	vx.Properties = map[string][]graph.VertexProperty{
		"name": {{Label: "name", Value: graph.String("marko").GValue()}},
		"age":  {{Label: "age", Value: graph.Int32(29).GValue()}},
	}
	got := fmtLabel(vx, true)
	if got != "person 1\nage: 29\nname: marko" {
		t.Errorf("label = %q", got)
	}
	if got := fmtLabel(vx, false); got != "person 1" {
		t.Errorf("label = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(svg))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116">`) {
		t.Errorf("normalized = %s", got)
	}
}
