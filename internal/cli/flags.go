package cli

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/pipeline"
)

// layoutFlags holds the layout options shared by layout, render, preview and
// serve. Flags only override the configured defaults when set explicitly.
type layoutFlags struct {
	width       float64
	gap         float64
	columnWidth float64
	columns     int
	placeholder float64
	breakpoints []string
	noCache     bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64VarP(&f.width, "width", "w", pipeline.DefaultWidth, "container width in pixels")
	flags.Float64Var(&f.gap, "gap", pipeline.DefaultGap, "gap between columns and stacked tiles")
	flags.Float64Var(&f.columnWidth, "column-width", pipeline.DefaultColumnWidth, "minimum column width (auto mode)")
	flags.IntVarP(&f.columns, "columns", "c", 0, "fixed column count (overrides breakpoints)")
	flags.Float64Var(&f.placeholder, "placeholder", pipeline.DefaultPlaceholder, "height of tiles with no size hint")
	flags.StringSliceVar(&f.breakpoints, "breakpoints", nil, "breakpoint column counts, e.g. md=3,xl=5,default=2")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options merges explicitly set flags over the configured defaults.
func (f *layoutFlags) options(cmd *cobra.Command, defaults pipeline.Options) (pipeline.Options, error) {
	opts := defaults
	opts.Breakpoints = maps.Clone(defaults.Breakpoints)
	if defaults.Gap != nil {
		gap := *defaults.Gap
		opts.Gap = &gap
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("gap") {
		gap := f.gap
		opts.Gap = &gap
	}
	if flags.Changed("column-width") {
		opts.ColumnWidth = f.columnWidth
	}
	if flags.Changed("columns") {
		opts.Columns = f.columns
	}
	if flags.Changed("placeholder") {
		opts.Placeholder = f.placeholder
	}
	if flags.Changed("breakpoints") {
		named, def, err := parseBreakpoints(f.breakpoints)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Breakpoints = named
		opts.BreakpointDefault = def
	}
	return opts, nil
}

// parseBreakpoints parses "name=count" pairs. The name "default" sets the
// column count used below the smallest threshold.
func parseBreakpoints(pairs []string) (map[string]int, int, error) {
	named := make(map[string]int)
	def := 0
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, 0, fmt.Errorf("breakpoint %q: expected name=count", pair)
		}
		count, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || count < 1 {
			return nil, 0, fmt.Errorf("breakpoint %q: count must be a positive integer", pair)
		}
		name = strings.TrimSpace(name)
		if name == "default" {
			def = count
			continue
		}
		named[name] = count
	}
	if err := pipeline.ValidateBreakpoints(named); err != nil {
		return nil, 0, err
	}
	return named, def, nil
}
