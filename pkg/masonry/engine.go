package masonry

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/observability"
)

// Size is an estimated item size. Only its aspect ratio matters: the engine
// scales it to the resolved column width.
type Size struct {
	Width  float64
	Height float64
}

// SizeFunc estimates the size of an item. Returning false, or a size with a
// non-positive dimension, makes the engine fall back to the placeholder height.
type SizeFunc[T any] func(item T, index int) (Size, bool)

// Config holds the scalar inputs of a layout pass.
type Config struct {
	// Width is the container width. 0 means not yet measured.
	Width float64

	// Gap is the spacing between columns and between stacked items.
	Gap float64

	// Columns selects auto, fixed or breakpoint mode.
	Columns Columns

	// PlaceholderHeight is used for items with no measurement and no usable
	// estimate. Non-positive values use [DefaultPlaceholderHeight].
	PlaceholderHeight float64
}

// DefaultConfig returns an unmeasured container with default gap, column
// width and placeholder height.
func DefaultConfig() Config {
	return Config{
		Gap:               DefaultGap,
		Columns:           AutoColumns(DefaultColumnWidth),
		PlaceholderHeight: DefaultPlaceholderHeight,
	}
}

// Layout is an immutable snapshot of one computed pass.
type Layout struct {
	Width           float64
	Gap             float64
	ColumnCount     int
	ColumnWidth     float64
	ContainerHeight float64
	Positions       []Position
}

// Option configures an [Engine].
type Option[T any] func(*Engine[T])

// WithKey sets the stable key extractor. Without it items are keyed by index.
func WithKey[T any](fn KeyFunc[T]) Option[T] {
	return func(e *Engine[T]) {
		if fn != nil {
			e.keyFn = fn
		}
	}
}

// WithSize sets the size estimator.
func WithSize[T any](fn SizeFunc[T]) Option[T] {
	return func(e *Engine[T]) { e.sizeFn = fn }
}

// WithLogger logs each recomputation at debug level.
func WithLogger[T any](l *log.Logger) Option[T] {
	return func(e *Engine[T]) { e.logger = l }
}

// WithHeights seeds the height cache, e.g. with measurements persisted from
// an earlier session.
func WithHeights[T any](m map[Key]float64) Option[T] {
	return func(e *Engine[T]) { e.heights.replace(m) }
}

// Engine is a stateful masonry layout calculator for one container.
//
// It holds the container width, column configuration and the height cache,
// and recomputes every position synchronously whenever one of them, or the
// item list, changes. Reads always reflect the most recent pass.
//
// An Engine is not safe for concurrent use. Hosts that share one across
// goroutines must hold a single lock around each mutate-and-read sequence.
type Engine[T any] struct {
	width       float64
	gap         float64
	columns     Columns
	placeholder float64

	keyFn  KeyFunc[T]
	sizeFn SizeFunc[T]
	logger *log.Logger

	items   []T
	heights *Heights

	count     int
	colWidth  float64
	positions []Position
	height    float64

	listeners []func(Layout)
	closed    bool
}

// New creates an engine and computes its initial (empty) layout.
func New[T any](cfg Config, opts ...Option[T]) *Engine[T] {
	e := &Engine[T]{
		width:       clampNonNegative(cfg.Width),
		gap:         clampNonNegative(cfg.Gap),
		columns:     cfg.Columns,
		placeholder: placeholderOrDefault(cfg.PlaceholderHeight),
		keyFn:       IndexKey[T],
		heights:     NewHeights(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.recalculate()
	return e
}

// Recalculate forces a full synchronous recomputation.
func (e *Engine[T]) Recalculate() {
	if e.closed {
		return
	}
	e.recalculate()
}

// SetWidth updates the container width. The layout is recomputed only when
// the width actually changes. Negative and non-finite widths clamp to 0.
func (e *Engine[T]) SetWidth(width float64) {
	width = clampNonNegative(width)
	if e.closed || width == e.width {
		return
	}
	e.width = width
	e.recalculate()
}

// SetItems replaces the item list and recomputes. Recorded heights keyed by
// stable identity carry over to the new list. The engine keeps a reference
// to items; callers must not mutate it afterwards.
func (e *Engine[T]) SetItems(items []T) {
	if e.closed {
		return
	}
	e.items = items
	e.recalculate()
}

// SetColumns changes the column configuration and recomputes.
func (e *Engine[T]) SetColumns(cols Columns) {
	if e.closed {
		return
	}
	e.columns = cols
	e.recalculate()
}

// SetGap changes the gap and recomputes. Negative gaps clamp to 0.
func (e *Engine[T]) SetGap(gap float64) {
	if e.closed {
		return
	}
	e.gap = clampNonNegative(gap)
	e.recalculate()
}

// SetPlaceholderHeight changes the placeholder height and recomputes.
func (e *Engine[T]) SetPlaceholderHeight(h float64) {
	if e.closed {
		return
	}
	e.placeholder = placeholderOrDefault(h)
	e.recalculate()
}

// ReportMeasuredHeight records an exact height for key. When it differs from
// the recorded value, or none was recorded, the layout is recomputed and true
// is returned. Reporting an unchanged height is a no-op, which keeps an
// observer of a stable element from re-laying out forever.
func (e *Engine[T]) ReportMeasuredHeight(key Key, height float64) bool {
	if e.closed {
		return false
	}
	changed := e.heights.Set(key, height)
	observability.Layout().OnHeightReported(key.String(), changed)
	if changed {
		e.recalculate()
	}
	return changed
}

// RestoreHeights replaces the whole height cache and recomputes.
func (e *Engine[T]) RestoreHeights(m map[Key]float64) {
	if e.closed {
		return
	}
	e.heights.replace(m)
	e.recalculate()
}

// MeasuredHeight returns the recorded height for key, if any.
func (e *Engine[T]) MeasuredHeight(key Key) (float64, bool) {
	return e.heights.Get(key)
}

// HeightsSnapshot returns a copy of the height cache, including entries for
// items no longer in the list.
func (e *Engine[T]) HeightsSnapshot() map[Key]float64 {
	return e.heights.Snapshot()
}

// OnChange registers fn to be called after every recomputation.
func (e *Engine[T]) OnChange(fn func(Layout)) {
	if e.closed || fn == nil {
		return
	}
	e.listeners = append(e.listeners, fn)
}

// Close tears the engine down. Listeners are dropped and later mutations
// are ignored; reads keep returning the last layout.
func (e *Engine[T]) Close() {
	e.closed = true
	e.listeners = nil
}

// Items returns the current item list.
func (e *Engine[T]) Items() []T { return e.items }

// Positions returns the current layout, one entry per item in list order.
// The slice is owned by the engine and replaced on every recomputation.
func (e *Engine[T]) Positions() []Position { return e.positions }

// ColumnCount returns the resolved column count.
func (e *Engine[T]) ColumnCount() int { return e.count }

// ColumnWidth returns the resolved uniform column width.
func (e *Engine[T]) ColumnWidth() float64 { return e.colWidth }

// ContainerHeight returns the height needed to contain every item.
func (e *Engine[T]) ContainerHeight() float64 { return e.height }

// Width returns the current container width.
func (e *Engine[T]) Width() float64 { return e.width }

// Snapshot returns a copy of the current layout.
func (e *Engine[T]) Snapshot() Layout {
	return Layout{
		Width:           e.width,
		Gap:             e.gap,
		ColumnCount:     e.count,
		ColumnWidth:     e.colWidth,
		ContainerHeight: e.height,
		Positions:       append([]Position(nil), e.positions...),
	}
}

func (e *Engine[T]) recalculate() {
	start := time.Now()

	e.count, e.colWidth = ResolveColumns(e.width, e.gap, e.columns)
	e.positions = Pack(len(e.items), e.count, e.colWidth, e.gap, e.resolveHeight)
	e.height = ContainerHeight(e.positions)

	elapsed := time.Since(start)
	observability.Layout().OnRecalculate(len(e.items), e.count, elapsed)
	if e.logger != nil {
		e.logger.Debug("recalculated layout",
			"items", len(e.items),
			"columns", e.count,
			"column_width", e.colWidth,
			"height", e.height,
			"duration", elapsed)
	}

	if len(e.listeners) > 0 {
		snap := e.Snapshot()
		for _, fn := range e.listeners {
			fn(snap)
		}
	}
}

// resolveHeight picks the height of item i: a recorded measurement first,
// then the estimate scaled to the column width, then the placeholder.
func (e *Engine[T]) resolveHeight(i int) float64 {
	item := e.items[i]
	if h, ok := e.heights.Get(e.keyFn(item, i)); ok {
		return h
	}
	if e.sizeFn != nil {
		if s, ok := e.sizeFn(item, i); ok && validDimension(s.Width) && validDimension(s.Height) {
			return s.Height / s.Width * e.colWidth
		}
	}
	return e.placeholder
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func placeholderOrDefault(h float64) float64 {
	if h > 0 && !math.IsInf(h, 0) {
		return h
	}
	return DefaultPlaceholderHeight
}
