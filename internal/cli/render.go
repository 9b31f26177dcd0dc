package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/pipeline"
)

// renderOpts holds the render-specific command-line flags.
type renderOpts struct {
	output      string // output file (single format) or base path (multiple)
	formats     string // comma-separated output formats
	labels      bool   // draw tile labels in SVG output
	textColumns int    // canvas width of text output
	refresh     bool   // ignore cached layouts and artifacts
}

// renderCommand creates the render command for generating board renderings.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts  renderOpts
		flags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [board.json|board.toml]",
		Short: "Render a board layout to SVG, JSON or text",
		Long: `Render a board layout to SVG, JSON or text.

The board is laid out first (see 'masonry layout'), then each requested
format is written next to the input file, or to --output.

  svg   scalable vector drawing of the placed tiles
  json  layout positions (same as 'masonry layout')
  txt   character drawing for terminals and logs`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBoardFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts, &flags)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, txt (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw tile labels (svg)")
	cmd.Flags().IntVar(&opts.textColumns, "text-columns", pipeline.DefaultTextColumns, "canvas width in characters (txt)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	flags.register(cmd)

	return cmd
}

// runRender loads the board, runs the full pipeline, and writes one file per
// format.
func (c *CLI) runRender(cmd *cobra.Command, input string, ro *renderOpts, flags *layoutFlags) error {
	ctx := cmd.Context()
	opts, err := flags.options(cmd, c.Config.PipelineOptions())
	if err != nil {
		return err
	}
	opts.Formats = parseFormats(ro.formats)
	opts.Labels = ro.labels
	opts.TextColumns = ro.textColumns
	opts.Refresh = ro.refresh
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	b, err := c.loadBoard(input)
	if err != nil {
		return fmt.Errorf("load board %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, flags.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d tiles...", len(b.Tiles)))
	spinner.Start()

	l, layoutHit, err := runner.LayoutWithCacheInfo(ctx, b, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.SetMessage(fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	formats := opts.SortedFormats()
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(ro.output, input, format, len(formats) == 1)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	prog.done(fmt.Sprintf("Rendered %d tiles", len(l.Tiles)))

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(l.Tiles), l.ColumnCount, l.Height, layoutHit && renderHit)

	return nil
}

// outputPath picks the file for one format. A single format honors --output
// as given; multiple formats use it as a base path.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + extension(format)
}

// basePath derives the base output path from the output and input file paths.
// Known format extensions are stripped from output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// extension returns the file suffix for a format. JSON output is a layout,
// named so it never overwrites a JSON board next to it.
func extension(format string) string {
	if format == pipeline.FormatJSON {
		return ".layout.json"
	}
	return "." + format
}
