// Package cli implements the chartkit command-line interface.
//
// The CLI renders dashboards of charts and gauges, draws single dials from
// flags, converts data files and manages the artifact cache. Every command
// goes through pkg/pipeline so output and caching behave the same.
//
// # Commands
//
//   - render: render every panel of a dashboard file
//   - gauge: render one dial from flags
//   - explore: toggle legend options of a chart panel interactively
//   - convert: import a CSV or XLSX file and write it as JSON
//   - cache: clear the cache or print its location
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and --quiet
// (-q) for errors only. The logger is stored in the command context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chartkit"

	// redisEnv names the Redis address used when --redis is not given.
	redisEnv = "CHARTKIT_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
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
	var verbose, quiet bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "chartkit renders interactive charts and gauges",
		Long:         `chartkit composes bar, stacked, line and area layers over shared axes and draws gauge dials, writing SVG with hover and legend interactions or JSON scene exports.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case verbose:
				c.SetLogLevel(LogDebug)
			case quiet:
				c.SetLogLevel(LogError)
			}
			(&logHooks{logger: c.Logger}).register()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.gaugeCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheOpts are the cache flags shared by commands that render.
type cacheOpts struct {
	noCache bool
	refresh bool
	ttl     time.Duration
	redis   string
}

func (o *cacheOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results and render again")
	cmd.Flags().DurationVar(&o.ttl, "cache-ttl", cache.TTLArtifact, "how long rendered artifacts stay cached")
	cmd.Flags().StringVar(&o.redis, "redis", "", "Redis address for a shared cache (default $"+redisEnv+", else a file cache)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, o cacheOpts) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, o)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache.Observed(cc), cacheKeyer(), c.Logger), nil
}

// cacheKeyer scopes every key to the build version. Artifacts from another
// build may render differently.
func cacheKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Get().Version+":")
}

// newCache picks the cache backend: none, Redis, or the file cache. An
// unusable cache directory disables caching instead of failing.
func (c *CLI) newCache(ctx context.Context, o cacheOpts) (cache.Cache, error) {
	if o.noCache {
		return cache.NewNullCache(), nil
	}
	addr := o.redis
	if addr == "" {
		addr = os.Getenv(redisEnv)
	}
	if addr != "" {
		c.Logger.Debug("using redis cache", "addr", addr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chartkit/).
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
