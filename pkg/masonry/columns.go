package masonry

import (
	"cmp"
	"math"
	"slices"
)

// Layout defaults.
const (
	// DefaultColumnWidth is the minimum column width used in auto mode and as
	// the placeholder column width before the container is measured.
	DefaultColumnWidth = 250.0

	// DefaultGap is the horizontal and vertical spacing between items.
	DefaultGap = 16.0

	// DefaultPlaceholderHeight is used for items with no measurement and no
	// usable size estimate.
	DefaultPlaceholderHeight = 200.0

	// DefaultBreakpointColumns is the column count used when no breakpoint
	// threshold matches and the table sets no default.
	DefaultBreakpointColumns = 2
)

// Named breakpoint thresholds, in container pixels.
var NamedBreakpoints = map[string]float64{
	"sm":  640,
	"md":  768,
	"lg":  1024,
	"xl":  1280,
	"2xl": 1536,
}

// Threshold maps a minimum container width to a column count.
type Threshold struct {
	MinWidth float64
	Columns  int
}

// Breakpoints is a responsive column table. The column count is taken from
// the largest threshold not exceeding the container width, falling back to
// Default (itself [DefaultBreakpointColumns] when unset).
type Breakpoints struct {
	Default    int
	Thresholds []Threshold
}

// NewBreakpoints builds a table from named entries such as
// {"default": 2, "md": 4}. Names may be any key of [NamedBreakpoints]; unknown
// names are reported in the second return value and otherwise skipped.
func NewBreakpoints(named map[string]int) (Breakpoints, []string) {
	var (
		bp      Breakpoints
		unknown []string
	)
	for name, cols := range named {
		if name == "default" {
			bp.Default = cols
			continue
		}
		px, ok := NamedBreakpoints[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		bp.Thresholds = append(bp.Thresholds, Threshold{MinWidth: px, Columns: cols})
	}
	slices.Sort(unknown)
	return bp, unknown
}

// Resolve returns the column count for the given container width.
func (b Breakpoints) Resolve(width float64) int {
	count := b.Default
	if count <= 0 {
		count = DefaultBreakpointColumns
	}

	sorted := slices.Clone(b.Thresholds)
	slices.SortStableFunc(sorted, func(x, y Threshold) int {
		return cmp.Compare(x.MinWidth, y.MinWidth)
	})

	// Ascending walk: a larger matching threshold overrides a smaller one.
	for _, t := range sorted {
		if width >= t.MinWidth {
			count = t.Columns
		}
	}
	return count
}

// Columns selects how the column count is derived. Count and Breakpoints take
// precedence over auto mode; when both are set, Count wins.
type Columns struct {
	// MinWidth is the minimum column width for auto mode and the placeholder
	// column width before measurement.
	MinWidth float64

	// Count fixes the number of columns when positive.
	Count int

	// Breakpoints selects the count from the container width when non-nil.
	Breakpoints *Breakpoints
}

// AutoColumns derives the column count from the container width.
func AutoColumns(minWidth float64) Columns { return Columns{MinWidth: minWidth} }

// FixedColumns uses a constant column count. Counts below 1 clamp to 1.
func FixedColumns(count int) Columns {
	if count < 1 {
		count = 1
	}
	return Columns{Count: count}
}

// ResponsiveColumns selects the column count from a breakpoint table.
func ResponsiveColumns(bp Breakpoints) Columns { return Columns{Breakpoints: &bp} }

// minWidth returns MinWidth or the default when unset or invalid.
func (c Columns) minWidth() float64 {
	if c.MinWidth > 0 && !math.IsInf(c.MinWidth, 0) {
		return c.MinWidth
	}
	return DefaultColumnWidth
}

// ResolveColumns computes the column count and uniform column width for one
// layout pass. It never fails; invalid inputs clamp to sane values.
//
// A width of 0 means the container has not been measured yet: the count is 1
// and the column width is the configured minimum.
func ResolveColumns(width, gap float64, cols Columns) (int, float64) {
	width = clampNonNegative(width)
	gap = clampNonNegative(gap)

	if width == 0 {
		return 1, cols.minWidth()
	}

	var count int
	switch {
	case cols.Count != 0:
		count = cols.Count
	case cols.Breakpoints != nil:
		count = cols.Breakpoints.Resolve(width)
	default:
		// The last column needs no trailing gap.
		count = int(math.Floor((width + gap) / (cols.minWidth() + gap)))
	}
	if count < 1 {
		count = 1
	}

	colWidth := (width - float64(count-1)*gap) / float64(count)
	if colWidth < 0 {
		colWidth = 0
	}
	return count, colWidth
}

func clampNonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
