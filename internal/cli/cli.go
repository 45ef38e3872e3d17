// Package cli implements the chartfit command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartfit/pkg/buildinfo"
	"github.com/matzehuels/chartfit/pkg/cache"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/chart/theme"
	"github.com/matzehuels/chartfit/pkg/observability"
	"github.com/matzehuels/chartfit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chartfit"

	// envProfile and envTheme name the environment variables that point at
	// the profile and theme files when the flags are not given.
	envProfile = "CHARTFIT_PROFILE"
	envTheme   = "CHARTFIT_THEME"
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

	profilePath string
	themePath   string
	noCache     bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level pipeline and cache
// events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "chartfit sizes bar charts and builds their configuration",
		Long:         `chartfit computes bar proportions and chart extents that keep bars readable at any density, and merges theme presets, sizing results and overrides into finished chart configurations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(contextOf(cmd), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.profilePath, "profile", os.Getenv(envProfile), "tuning profile file (toml, yaml or json)")
	root.PersistentFlags().StringVar(&c.themePath, "theme", os.Getenv(envTheme), "theme token file (toml, yaml or json)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	// Register all subcommands
	root.AddCommand(c.sizeCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.profileCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use with the configured
// profile and theme.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	p, err := c.loadProfile()
	if err != nil {
		return nil, err
	}
	tokens, err := theme.LoadOrDefault(c.themePath)
	if err != nil {
		return nil, err
	}
	store, err := newCache(c.noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.Profiles = profile.NewStore(p)
	runner.Tokens = tokens
	return runner, nil
}

func (c *CLI) loadProfile() (*profile.Profile, error) {
	return profile.LoadOrDefault(c.profilePath)
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chartfit/).
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
