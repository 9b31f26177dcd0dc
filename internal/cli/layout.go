package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// layoutCommand creates the layout command for computing board layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [board.json|board.toml]",
		Short: "Compute the masonry layout of a board",
		Long: `Compute the masonry layout of a board.

The layout command places every tile of the board in the currently shortest
column and writes the positions as a layout.json file (same format as
'render -f json').

Heights recorded with 'masonry measure' for the board's name are applied
before the layout is computed. Results are cached for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBoardFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], output, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the board, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, input, output string, flags *layoutFlags) error {
	ctx := cmd.Context()
	opts, err := flags.options(cmd, c.Config.PipelineOptions())
	if err != nil {
		return err
	}

	b, err := c.loadBoard(input)
	if err != nil {
		return fmt.Errorf("load board %s: %w", input, err)
	}

	l, cacheHit, err := c.computeLayout(ctx, b, flags.noCache, opts)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := board.WriteLayoutFile(outputPath, l); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Tiles), l.ColumnCount, l.Height, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}

// computeLayout runs the layout stage behind a spinner.
func (c *CLI) computeLayout(ctx context.Context, b board.Board, noCache bool, opts pipeline.Options) (board.Layout, bool, error) {
	runner, err := c.newRunner(ctx, noCache, nil)
	if err != nil {
		return board.Layout{}, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d tiles...", len(b.Tiles)))
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, b, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return board.Layout{}, false, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return board.Layout{}, false, ctx.Err()
	}
	return l, cacheHit, nil
}
