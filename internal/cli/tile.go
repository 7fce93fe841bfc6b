package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtile/pkg/pipeline"
)

// tileOpts holds the command-line flags for the tile command.
type tileOpts struct {
	output    string   // output file (single format) or base path (multiple)
	formats   []string // output formats: "json", "svg", "txt"
	width     int      // container width override
	height    int      // container height override
	spacing   *int     // spacing override, nil keeps the scene's
	style     string   // svg style: "simple" or "wireframe"
	labels    bool     // draw widget text in svg output
	gridLines bool     // draw row and column edges in svg output
	noCache   bool     // bypass the layout cache
	refresh   bool     // recompute and overwrite cached entries
	stdout    bool     // print the single artifact instead of writing a file
}

// tileCommand creates the tile command.
func (c *CLI) tileCommand() *cobra.Command {
	var (
		formatsStr string
		spacing    int
	)
	opts := tileOpts{style: pipeline.DefaultStyle}

	cmd := &cobra.Command{
		Use:   "tile [scene]",
		Short: "Tile a scene and write the layout",
		Long: `Tile reads a scene file (TOML or JSON), places its widgets, resolves every
row and column and writes the layout in the requested formats.

Widgets the grid cannot place are reported and left out of the layout.`,
		Example: `  gridtile tile login.toml
  gridtile tile login.toml -f svg,txt --labels --width 800
  gridtile tile dashboard.json -f txt --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.spacing = spacingFlag(cmd, spacing)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.style); err != nil {
				return err
			}
			if opts.stdout && len(opts.formats) != 1 {
				return fmt.Errorf("--stdout needs exactly one format, got %d", len(opts.formats))
			}
			return c.runTile(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), svg, txt (comma-separated)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "container width (default: the scene's, else 640)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "container height (default: the scene's, else 480)")
	cmd.Flags().IntVar(&spacing, "spacing", 0, "spacing between rows and columns (default: the scene's, else 5)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "svg style: simple (default), wireframe")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw widget text in svg output")
	cmd.Flags().BoolVar(&opts.gridLines, "grid-lines", false, "draw row and column edges in svg output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached layouts")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the artifact to stdout")

	return cmd
}

// runTile runs the pipeline for one scene and writes its artifacts.
func (c *CLI) runTile(ctx context.Context, input string, opts tileOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if !opts.stdout {
		spinner = newSpinner(ctx, os.Stderr, fmt.Sprintf("Loading %s...", input))
		defer followStages(spinner)()
		spinner.Start()
	}
	result, err := runner.Execute(ctx, input, pipeline.Options{
		Width:     opts.width,
		Height:    opts.height,
		Spacing:   opts.spacing,
		Refresh:   opts.refresh,
		Formats:   opts.formats,
		Style:     opts.style,
		Labels:    opts.labels,
		GridLines: opts.gridLines,
		Logger:    logger,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if opts.stdout {
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	prog.done(fmt.Sprintf("Tiled %s", result.Scene.Name))
	printSuccess("Tiled %s", StyleHighlight.Render(result.Scene.Name))
	printStats(result.Stats.PlacedCount, result.Stats.RejectedCount, result.CacheInfo.TileHit)
	printRejections(result.Layout.Rejected)

	paths, err := writeArtifacts(result.Artifacts, opts.formats, basePath(opts.output, input), opts.output)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	printNewline()
	printNextStep("Inspect the resolved lines", fmt.Sprintf("%s inspect %s", appName, input))
	return nil
}

// writeArtifacts writes one file per format. A single format goes to
// output when one was given; otherwise files are named base.<format>.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	formats = slices.Clone(formats)
	slices.Sort(formats)

	var paths []string
	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if len(formats) == 1 && output != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
