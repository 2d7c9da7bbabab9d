// Package cli implements the gremlin command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gremlin/pkg/aio"
	"github.com/matzehuels/gremlin/pkg/buildinfo"
	"github.com/matzehuels/gremlin/pkg/cache"
	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/traversal"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gremlin"

	// resultTTL is how long cached traversal results stay valid.
	resultTTL = 10 * time.Minute
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	host       string
	port       int
	noCache    bool
	redisURL   string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gremlin queries a Gremlin Server from the terminal",
		Long:         `gremlin is a CLI for a Gremlin-compatible graph database. It builds typed traversals, sends them as GraphSON bytecode over WebSocket, and renders or exports the results.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "TOML connection config")
	flags.StringVar(&c.host, "host", "", "server host (overrides config)")
	flags.IntVar(&c.port, "port", 0, "server port (overrides config)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")
	flags.StringVar(&c.redisURL, "redis", "", "cache results in Redis at this URL instead of on disk")

	root.AddCommand(c.pingCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.labelsCommand())
	root.AddCommand(c.neighborsCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Session Factory
// =============================================================================

// options resolves connection options from --config and the override flags.
func (c *CLI) options() (aio.Options, error) {
	opts := aio.DefaultOptions()
	if c.configPath != "" {
		loaded, err := aio.LoadOptions(c.configPath)
		if err != nil {
			return aio.Options{}, err
		}
		opts = loaded
	}
	if c.host != "" {
		opts.Host = c.host
	}
	if c.port != 0 {
		opts.Port = c.port
	}
	opts.Logger = c.Logger
	if err := opts.Validate(); err != nil {
		return aio.Options{}, err
	}
	return opts, nil
}

// session is an open client plus the traversal source bound to it.
type session struct {
	client *aio.Client
	cache  cache.Cache
	g      traversal.GraphTraversalSource
}

func (s *session) Close() error {
	return errors.Join(s.client.Close(), s.cache.Close())
}

// connect dials the server and builds a traversal source whose read-only
// traversals are answered from the result cache when possible.
func (c *CLI) connect(ctx context.Context) (*session, error) {
	opts, err := c.options()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("connecting", "url", opts.URL(), "pool", opts.PoolSize)

	client, err := aio.Dial(ctx, opts)
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	scoped := cache.Scoped(store, opts.Address()+"/")
	remote := aio.NewRemoteStrategy(client)
	strategies := traversal.NewStrategies(cache.NewStrategy(scoped, resultTTL, remote))

	return &session{client: client, cache: store, g: traversal.NewSource(strategies)}, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisURL != "" {
		return cache.NewRedisCache(ctx, c.redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gremlin/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Argument Helpers
// =============================================================================

// parseID turns a command-line vertex id into a step argument. Integers
// become g:Int64; anything else is sent as a string id.
func parseID(s string) graph.Valuer {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return graph.Int64(n)
	}
	return graph.String(s)
}
