// Package cli implements the gridtile command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtile/pkg/buildinfo"
	"github.com/matzehuels/gridtile/pkg/cache"
	"github.com/matzehuels/gridtile/pkg/pipeline"
	"github.com/matzehuels/gridtile/pkg/render/sink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gridtile"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
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
	root := &cobra.Command{
		Use:          appName,
		Short:        "gridtile arranges widgets on a grid",
		Long:         `gridtile reads a scene of widgets placed on a grid of rows and columns, resolves the size of every row and column from the widgets' size policies and renders the result as JSON, SVG or text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.tileCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, versionKeyer(), c.Logger), nil
}

// versionKeyer scopes cache keys to the running build.
func versionKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version)
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

// cacheDir returns the cache directory using XDG standard (~/.cache/gridtile/).
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

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .txt, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if sink.Supported(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return append([]string(nil), pipeline.DefaultFormats...)
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// spacingFlag returns nil when the --spacing flag was not given, so the
// scene's own spacing applies.
func spacingFlag(cmd *cobra.Command, value int) *int {
	if !cmd.Flags().Changed("spacing") {
		return nil
	}
	return &value
}
