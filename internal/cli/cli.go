// Package cli implements the influencegraph command-line interface.
//
// # Commands
//
// The main commands are:
//   - render: Render a graph or analysis report to SVG, HTML, PNG or JSON
//   - layout: Compute and save a lane layout
//   - visualize: Render a saved layout
//   - inspect: Summarize a graph in the terminal
//   - explore: Browse nodes and tooltips interactively
//   - serve: Run the preview server
//   - quote: Look up stock quotes
//   - cache: Manage the artifact cache
//   - sample: Write the demo report and quote book
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --log-file for a rotating log file. Loggers are passed through
// context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/influencegraph/internal/config"
	"github.com/matzehuels/influencegraph/pkg/cache"
	"github.com/matzehuels/influencegraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "influencegraph"

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

	stderr  io.Writer
	viper   *viper.Viper
	cfg     *config.Config
	logFile io.Closer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
		viper:  config.NewViper(),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Close releases the log file, if one was opened.
func (c *CLI) Close() error {
	if c.logFile == nil {
		return nil
	}
	return c.logFile.Close()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the configured cache backend. A file cache whose directory
// cannot be resolved degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, c.cfg.Cache.RedisURL, c.cfg.Cache.Namespace)
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("Cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/influencegraph/).
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
// Options Helpers
// =============================================================================

// setCLIDefaults applies the resolved configuration (config files,
// environment and bound flags) on top of pipeline defaults.
func (c *CLI) setCLIDefaults(opts *pipeline.Options) {
	opts.VizType = c.cfg.Render.VizType
	opts.Width = c.cfg.Render.Width
	opts.Scale = c.cfg.Render.Scale
	opts.Formats = slices.Clone(c.cfg.Render.Formats)
	opts.Quotes = c.cfg.Quotes
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.Logger = c.Logger
}
