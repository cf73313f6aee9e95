// Package cli implements the geneagraph command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mklemetti/geneagraph/pkg/buildinfo"
	"github.com/mklemetti/geneagraph/pkg/cache"
	"github.com/mklemetti/geneagraph/pkg/config"
	"github.com/mklemetti/geneagraph/pkg/mathgenealogy"
)

const (
	// appName is the application name used for directories and display.
	appName = "geneagraph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
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
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Geneagraph visualizes mathematician advisor genealogies",
		Long:         `Geneagraph builds academic genealogy graphs from the Mathematics Genealogy Project and renders them with Graphviz, tracing advisor and student relationships across generations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file path (default: $XDG_CONFIG_HOME/geneagraph/config.toml)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newClient builds a record fetcher backed by the configured cache.
func (c *CLI) newClient(cmd *cobra.Command, noCache bool) (*mathgenealogy.Client, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(cmd, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return mathgenealogy.NewClient(store, cfg.BaseURL, cfg.Cache.TTL()), nil
}

// newResolver builds a graph resolver backed by the configured cache.
func (c *CLI) newResolver(cmd *cobra.Command, noCache bool) (*mathgenealogy.Resolver, error) {
	client, err := c.newClient(cmd, noCache)
	if err != nil {
		return nil, err
	}
	return mathgenealogy.NewResolver(client), nil
}

// newCache selects the cache backend from configuration. Unavailable
// backends degrade to no caching rather than failing the command.
func (c *CLI) newCache(cmd *cobra.Command, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		store, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			c.Logger.Warnf("Redis cache unavailable, caching disabled: %v", err)
			return cache.NewNullCache(), nil
		}
		return store, nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/geneagraph/).
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
