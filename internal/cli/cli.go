package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/internal/config"
	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/buildinfo"
	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "masonry"

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

	// Config is loaded by the root command before any subcommand runs.
	Config config.Config
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
		Short:        "Masonry lays out tiles in shortest-column-first columns",
		Long:         `Masonry is a CLI tool for computing waterfall (masonry) layouts of tile boards, rendering them as SVG, JSON or text, and serving layouts over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.measureCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment. The configured log level
// applies unless --verbose already selected debug output.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.Config = cfg

	if c.Logger.GetLevel() != log.DebugLevel {
		level, err := parseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		c.Logger.SetLevel(level)
	}
	c.Logger.Debug("loaded config", "path", config.Path(), "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner over the configured cache backend.
// Remote backends connect behind a spinner.
func (c *CLI) newRunner(ctx context.Context, noCache bool, keyer cache.Keyer) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	opts := c.Config.CacheOptions()
	if noCache {
		opts.Backend = cache.BackendNone
	}
	if (opts.Backend == cache.BackendFile || opts.Backend == "") && opts.Dir == "" {
		opts.Dir = config.DefaultCacheDir()
	}

	if opts.Backend != cache.BackendRedis && opts.Backend != cache.BackendMongo {
		return cache.Open(ctx, opts)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Connecting to %s cache...", opts.Backend))
	spinner.Start()
	store, err := cache.Open(ctx, opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Could not connect to %s cache", opts.Backend))
		return nil, err
	}
	spinner.Stop()
	c.Logger.Debug("connected to cache", "backend", opts.Backend)
	return store, nil
}

// =============================================================================
// Board Helpers
// =============================================================================

// loadBoard reads a board file and logs its size.
func (c *CLI) loadBoard(path string) (board.Board, error) {
	b, err := board.ReadBoardFile(path)
	if err != nil {
		return board.Board{}, err
	}
	c.Logger.Debug("loaded board", "name", b.Name, "tiles", len(b.Tiles), "path", path)
	return b, nil
}

// boardName resolves an argument that is either a board file or a bare board
// name.
func boardName(arg string) string {
	if _, err := board.FormatFromPath(arg); err == nil {
		if _, err := os.Stat(arg); err == nil {
			if b, err := board.ReadBoardFile(arg); err == nil {
				return b.Name
			}
		}
		return board.NameFromPath(arg)
	}
	return arg
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
