package cli

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gremlin/pkg/aio"
	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/render/dot"
	"github.com/matzehuels/gremlin/pkg/traversal"
)

// =============================================================================
// ping
// =============================================================================

func (c *CLI) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers traversals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPing(cmd.Context(), cmd)
		},
	}
}

// runPing sends g.V().limit(1).count() straight to the server, skipping the
// result cache.
func (c *CLI) runPing(ctx context.Context, cmd *cobra.Command) error {
	opts, err := c.options()
	if err != nil {
		return err
	}
	prog := newProgress(c.Logger)
	client, err := aio.Dial(ctx, opts)
	if err != nil {
		return err
	}
	defer client.Close()

	bc := traversal.NewSource(nil).V().Limit(1).Count().Bytecode()
	if _, err := client.Execute(ctx, bc); err != nil {
		return err
	}
	prog.done("ping", "url", opts.URL())
	printSuccess(cmd.OutOrStdout(), "%s answered in %s", opts.URL(), prog.elapsed())
	return nil
}

// =============================================================================
// count
// =============================================================================

func (c *CLI) countCommand() *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count vertices, optionally with one label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCount(cmd.Context(), cmd, label)
		},
	}
	cmd.Flags().StringVarP(&label, "label", "l", "", "only count vertices with this label")
	return cmd
}

func (c *CLI) runCount(ctx context.Context, cmd *cobra.Command, label string) error {
	s, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	t := s.g.V()
	if label != "" {
		t = t.HasLabel(label)
	}
	n, _, err := t.Count().Next(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}

// =============================================================================
// labels
// =============================================================================

// labelCount is one row of the labels table.
type labelCount struct {
	Label string
	Count int64
}

func (c *CLI) labelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List vertex labels with their counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			counts, err := fetchLabels(cmd.Context(), s.g)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				printInfo(cmd.OutOrStdout(), "Graph is empty")
				return nil
			}
			rows := make([][]string, len(counts))
			for i, lc := range counts {
				rows[i] = []string{lc.Label, strconv.FormatInt(lc.Count, 10)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Label", "Vertices"}, rows))
			return nil
		},
	}
}

// fetchLabels runs g.V().groupCount().by(label) and orders the result by
// descending count, then label.
func fetchLabels(ctx context.Context, g traversal.GraphTraversalSource) ([]labelCount, error) {
	m, ok, err := g.V().GroupCount().By(traversal.ByToken(graph.TLabel)).Next(ctx)
	if err != nil || !ok {
		return nil, err
	}
	counts := make([]labelCount, 0, m.Len())
	for _, e := range m.Entries() {
		label, err := graph.As[string](e.Key)
		if err != nil {
			return nil, fmt.Errorf("label key: %w", err)
		}
		n, err := graph.As[int64](e.Value)
		if err != nil {
			return nil, fmt.Errorf("count for %s: %w", label, err)
		}
		counts = append(counts, labelCount{Label: label, Count: n})
	}
	slices.SortFunc(counts, func(a, b labelCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return counts, nil
}

// =============================================================================
// neighbors
// =============================================================================

func (c *CLI) neighborsCommand() *cobra.Command {
	var (
		edgeLabels []string
		output     string
		detailed   bool
	)
	cmd := &cobra.Command{
		Use:   "neighbors <vertex-id>",
		Short: "Show the edges around a vertex",
		Long: `Show the incident edges of a vertex in both directions.

With --output the neighborhood is also written as Graphviz DOT (.dot) or
rendered to SVG (.svg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.connect(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			edges, err := s.g.V(parseID(args[0])).BothE(edgeLabels...).ToList(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(edges) == 0 {
				printInfo(out, "No edges around %s", args[0])
			}
			for _, e := range edges {
				fmt.Fprintln(out, elementLine(e, e.Label, []string{e.OutV.ID.String() + " " + iconArrow + " " + e.InV.ID.String()}))
			}
			if output == "" {
				return nil
			}

			g := dot.NewGraph()
			for _, e := range edges {
				g.Add(e.GValue())
			}
			if err := writeGraph(ctx, g, output, dot.Options{Detailed: detailed}); err != nil {
				return err
			}
			printFile(out, output)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&edgeLabels, "edge", "e", nil, "only follow edges with these labels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the neighborhood to a .dot or .svg file")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include vertex properties in the drawing")
	return cmd
}

// writeGraph writes g to path, choosing the format from the extension.
func writeGraph(ctx context.Context, g *dot.Graph, path string, opts dot.Options) error {
	src := dot.ToDOT(g, opts)
	var data []byte
	switch ext := filepath.Ext(path); ext {
	case ".dot", ".gv":
		data = []byte(src)
	case ".svg":
		svg, err := dot.RenderSVG(ctx, src)
		if err != nil {
			return err
		}
		data = svg
	default:
		return fmt.Errorf("unsupported output format %q (want .dot or .svg)", ext)
	}
	return os.WriteFile(path, data, 0o644)
}
