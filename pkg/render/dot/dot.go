package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gremlin/pkg/graph"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes vertex properties in node labels.
	// When false, only the label and id are shown.
	Detailed bool

	// Horizontal lays the graph out left to right instead of top to bottom.
	Horizontal bool
}

type edge struct {
	from, to string
	label    string
}

// Graph accumulates the vertices and edges of a result set.
// The zero value is not usable; call NewGraph.
type Graph struct {
	vertices map[string]graph.Vertex
	order    []string
	edges    []edge
	seen     map[edge]bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{vertices: make(map[string]graph.Vertex), seen: make(map[edge]bool)}
}

// FromValues collects every element in values.
func FromValues(values []graph.Value) *Graph {
	g := NewGraph()
	for _, v := range values {
		g.Add(v)
	}
	return g
}

// Len returns the number of vertices and edges collected.
func (g *Graph) Len() (vertices, edges int) {
	return len(g.order), len(g.edges)
}

// Add collects the elements in v. Scalars are ignored.
func (g *Graph) Add(v graph.Value) {
	switch v.Kind() {
	case graph.KindVertex:
		g.addVertex(v.Interface().(graph.Vertex))
	case graph.KindEdge:
		e := v.Interface().(graph.Edge)
		g.addVertex(e.OutV)
		g.addVertex(e.InV)
		g.addEdge(edge{from: e.OutV.ID.String(), to: e.InV.ID.String(), label: e.Label})
	case graph.KindPath:
		g.addPath(v.Interface().(graph.Path))
	case graph.KindList, graph.KindSet:
		items, _ := graph.As[graph.List](v)
		for _, item := range items {
			g.Add(item)
		}
	case graph.KindMap:
		m := v.Interface().(graph.Map)
		for _, e := range m.Entries() {
			g.Add(e.Key)
			g.Add(e.Value)
		}
	}
}

func (g *Graph) addPath(p graph.Path) {
	var prev string
	var linked bool
	for _, obj := range p.Objects {
		switch obj.Kind() {
		case graph.KindVertex:
			vx := obj.Interface().(graph.Vertex)
			g.addVertex(vx)
			id := vx.ID.String()
			if prev != "" && !linked {
				g.addEdge(edge{from: prev, to: id})
			}
			prev, linked = id, false
		case graph.KindEdge:
			g.Add(obj)
			linked = true
		}
	}
}

// addVertex records vx, keeping the richer of two sightings of the same id.
func (g *Graph) addVertex(vx graph.Vertex) {
	id := vx.ID.String()
	old, ok := g.vertices[id]
	if !ok {
		g.order = append(g.order, id)
		g.vertices[id] = vx
		return
	}
	if old.Label == "" || len(vx.Properties) > len(old.Properties) {
		g.vertices[id] = vx
	}
}

func (g *Graph) addEdge(e edge) {
	if g.seen[e] {
		return
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
}

// ToDOT converts g to Graphviz DOT source.
func ToDOT(g *Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Horizontal {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for _, id := range g.order {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, fmtLabel(g.vertices[id], opts.Detailed))
	}

	buf.WriteString("\n")
	for _, e := range g.edges {
		if e.label == "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.from, e.to, e.label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(vx graph.Vertex, detailed bool) string {
	head := vx.Label + " " + vx.ID.String()
	if vx.Label == "" {
		head = vx.ID.String()
	}
	if !detailed || len(vx.Properties) == 0 {
		return head
	}

	keys := make([]string, 0, len(vx.Properties))
	for k := range vx.Properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		vals := make([]string, len(vx.Properties[k]))
		for i, p := range vx.Properties[k] {
			vals[i] = p.Value.String()
		}
		parts = append(parts, k+": "+strings.Join(vals, ", "))
	}
	return head + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg tag with one whose
// viewBox starts at the origin and whose size is unitless.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
