package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gremlin/pkg/export"
	"github.com/matzehuels/gremlin/pkg/graph"
)

const (
	defaultMongoURI = "mongodb://localhost:27017"
	defaultDatabase = "gremlin"
)

// exportOptions are the flags of the export command.
type exportOptions struct {
	label      string
	limit      int64
	mongoURI   string
	database   string
	collection string
}

// collectionName defaults the target collection to the label, or
// "vertices" when every vertex is exported.
func (o exportOptions) collectionName() string {
	switch {
	case o.collection != "":
		return o.collection
	case o.label != "":
		return o.label
	default:
		return "vertices"
	}
}

func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy vertices into a MongoDB collection",
		Long: `Export vertices with their properties into MongoDB, one document per vertex.

Each document carries the vertex id, label and properties; multi-valued
properties become arrays.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "only export vertices with this label")
	cmd.Flags().Int64Var(&opts.limit, "limit", 0, "maximum number of vertices (0 exports all)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", defaultMongoURI, "MongoDB connection string")
	cmd.Flags().StringVar(&opts.database, "database", defaultDatabase, "MongoDB database")
	cmd.Flags().StringVar(&opts.collection, "collection", "", "MongoDB collection (defaults to the label)")
	return cmd
}

func (c *CLI) runExport(ctx context.Context, cmd *cobra.Command, opts exportOptions) error {
	s, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	t := s.g.V()
	if opts.label != "" {
		t = t.HasLabel(opts.label)
	}
	if opts.limit > 0 {
		t = t.Limit(opts.limit)
	}
	vertices, err := withSpinner(ctx, cmd.ErrOrStderr(), "Fetching vertices...", t.ToList)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(vertices) == 0 {
		printWarning(out, "Nothing to export")
		return nil
	}

	sink, disconnect, err := export.Connect(ctx, opts.mongoURI, opts.database, opts.collectionName())
	if err != nil {
		return err
	}
	defer disconnect(context.WithoutCancel(ctx))

	values := make([]graph.Value, len(vertices))
	for i, vx := range vertices {
		values[i] = vx.GValue()
	}
	n, err := sink.Write(ctx, values)
	if err != nil {
		printError(out, "Exported %d of %d vertices", n, len(values))
		return err
	}
	printSuccess(out, "Exported %d vertices", n)
	printDetail(out, "%s.%s", opts.database, opts.collectionName())
	return nil
}
