// Package pipeline provides the layout → render pipeline for masonry boards.
//
// This package implements the complete pipeline used by the CLI, the HTTP
// API and the terminal preview. By centralizing this logic, every entry
// point applies the same defaults, the same persisted heights and the same
// caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Merge persisted and tile-recorded measured heights, then run
//     the masonry engine over the board's tiles
//  2. Render: Generate output in various formats (SVG, JSON, text)
//
// Measured heights are persisted per board name, so a height reported once
// (by "masonry measure" or the API) is applied to every later layout of the
// same board.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, b, pipeline.Options{
//	    Width:   1200,
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Report heights discovered after rendering:
//
//	changed, err := runner.ReportHeights(ctx, "gallery", map[string]float64{
//	    "sunset": 412,
//	})
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Preview
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 1200.0

	// DefaultGap is the default gap between columns and stacked tiles.
	DefaultGap = masonry.DefaultGap

	// DefaultColumnWidth is the default minimum column width in auto mode.
	DefaultColumnWidth = masonry.DefaultColumnWidth

	// DefaultPlaceholder is the default height of tiles with no size hint.
	DefaultPlaceholder = masonry.DefaultPlaceholderHeight

	// DefaultTextColumns is the default canvas width of text output.
	DefaultTextColumns = 80
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width       float64  `json:"width,omitempty"`
	Gap         *float64 `json:"gap,omitempty"` // nil means DefaultGap; 0 is a valid gap
	ColumnWidth float64  `json:"column_width,omitempty"`
	Columns     int      `json:"columns,omitempty"` // fixed column count; wins over breakpoints
	Placeholder float64  `json:"placeholder,omitempty"`

	// Breakpoints maps named thresholds (sm, md, lg, xl, 2xl) to column counts.
	Breakpoints       map[string]int `json:"breakpoints,omitempty"`
	BreakpointDefault int            `json:"breakpoint_default,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	TextColumns int      `json:"text_columns,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout of the board.
	Layout board.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TileCount   int
	ColumnCount int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBreakpoints checks that every breakpoint name is known and every
// column count is positive.
func ValidateBreakpoints(named map[string]int) error {
	_, unknown := masonry.NewBreakpoints(named)
	if len(unknown) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown breakpoints: %v (use sm, md, lg, xl, 2xl)", unknown)
	}
	for name, n := range named {
		if n < 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "breakpoint %s: column count must be at least 1", name)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Gap == nil {
		gap := float64(DefaultGap)
		o.Gap = &gap
	}
	if o.ColumnWidth == 0 {
		o.ColumnWidth = DefaultColumnWidth
	}
	if o.Placeholder == 0 {
		o.Placeholder = DefaultPlaceholder
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	switch {
	case o.Width < 0:
		return errors.New(errors.ErrCodeInvalidInput, "width must not be negative")
	case *o.Gap < 0:
		return errors.New(errors.ErrCodeInvalidInput, "gap must not be negative")
	case o.ColumnWidth < 0:
		return errors.New(errors.ErrCodeInvalidInput, "column width must not be negative")
	case o.Columns < 0:
		return errors.New(errors.ErrCodeInvalidInput, "columns must not be negative")
	case o.Placeholder < 0:
		return errors.New(errors.ErrCodeInvalidInput, "placeholder height must not be negative")
	}
	return ValidateBreakpoints(o.Breakpoints)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.TextColumns == 0 {
		o.TextColumns = DefaultTextColumns
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ColumnConfig returns the engine column configuration: fixed when Columns
// is set, breakpoints when any are named, auto otherwise.
func (o *Options) ColumnConfig() masonry.Columns {
	switch {
	case o.Columns > 0:
		return masonry.FixedColumns(o.Columns)
	case len(o.Breakpoints) > 0:
		bp, _ := masonry.NewBreakpoints(o.Breakpoints)
		if o.BreakpointDefault > 0 {
			bp.Default = o.BreakpointDefault
		}
		return masonry.ResponsiveColumns(bp)
	default:
		return masonry.AutoColumns(o.ColumnWidth)
	}
}

// EngineConfig returns the engine configuration for these options.
func (o *Options) EngineConfig() masonry.Config {
	o.SetLayoutDefaults()
	return masonry.Config{
		Width:             o.Width,
		Gap:               *o.Gap,
		Columns:           o.ColumnConfig(),
		PlaceholderHeight: o.Placeholder,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(heightsHash string) cache.LayoutKeyOpts {
	o.SetLayoutDefaults()
	opts := cache.LayoutKeyOpts{
		Width:       o.Width,
		Gap:         *o.Gap,
		ColumnWidth: o.ColumnWidth,
		Columns:     o.Columns,
		Placeholder: o.Placeholder,
		HeightsHash: heightsHash,
	}
	if o.Columns == 0 && len(o.Breakpoints) > 0 {
		opts.Breakpoints = o.Breakpoints
		if o.BreakpointDefault > 0 {
			opts.Breakpoints = make(map[string]int, len(o.Breakpoints)+1)
			for k, v := range o.Breakpoints {
				opts.Breakpoints[k] = v
			}
			opts.Breakpoints["default"] = o.BreakpointDefault
		}
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Labels: o.Labels}
	if format == FormatText {
		k.Format = fmt.Sprintf("%s:%d", format, o.TextColumns)
	}
	return k
}

// SortedFormats returns the formats in a stable order.
func (o *Options) SortedFormats() []string {
	f := slices.Clone(o.Formats)
	slices.Sort(f)
	return slices.Compact(f)
}
