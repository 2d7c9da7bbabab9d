// Package dot renders traversal results as Graphviz node-link diagrams.
//
// # Overview
//
// Vertices, edges and paths found anywhere in a result set (including
// inside lists and map values) are collected into a [Graph]. Vertices
// become boxes and edges become labelled arrows. Consecutive vertices on a
// path with no edge between them are joined by an unlabelled arrow.
//
// # Usage
//
//	results, _ := g.V(graph.Int64(1)).BothE().ToList(ctx)
//	dg := dot.NewGraph()
//	for _, e := range results {
//	    dg.Add(e.GValue())
//	}
//	src := dot.ToDOT(dg, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
package dot
