package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gremlin/pkg/graph"
)

func (c *CLI) exploreCommand() *cobra.Command {
	var limit int64
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Pick a label interactively and list sample vertices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.connect(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			counts, err := withSpinner(ctx, cmd.ErrOrStderr(), "Loading labels...", func(ctx context.Context) ([]labelCount, error) {
				return fetchLabels(ctx, s.g)
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(counts) == 0 {
				printInfo(out, "Graph is empty")
				return nil
			}

			final, err := tea.NewProgram(NewLabelListModel(counts), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			fm, ok := final.(LabelListModel)
			if !ok || fm.Selected == "" {
				printDetail(out, "No selection made")
				return nil
			}

			vertices, err := s.g.V().HasLabel(fm.Selected).Limit(limit).ToList(ctx)
			if err != nil {
				return err
			}
			printSuccess(out, "%d %s vertices", len(vertices), fm.Selected)
			printVertices(out, vertices)
			return nil
		},
	}
	cmd.Flags().Int64Var(&limit, "limit", 20, "number of vertices to show")
	return cmd
}

// printVertices lists each vertex with its properties as key=value pairs.
func printVertices(w io.Writer, vertices []graph.Vertex) {
	for _, vx := range vertices {
		keys := make([]string, 0, len(vx.Properties))
		for k := range vx.Properties {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		props := make([]string, 0, len(keys))
		for _, k := range keys {
			for _, p := range vx.Properties[k] {
				props = append(props, fmt.Sprintf("%s=%s", k, p.Value))
			}
		}
		fmt.Fprintln(w, elementLine(vx, vx.Label, props))
	}
}
