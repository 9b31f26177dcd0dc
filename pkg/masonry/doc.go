// Package masonry computes masonry ("waterfall") layouts.
//
// # Overview
//
// Given an ordered list of items and a container width, the engine assigns
// each item an absolute position such that it lands in the currently
// shortest column. All columns share one width; item heights vary.
//
// The package has three layers:
//
//   - [ResolveColumns]: column count and width from the container width, gap
//     and [Columns] configuration
//   - [Pack]: shortest-column placement of item heights
//   - [Engine]: stateful calculator that keeps the container width, column
//     configuration and a cache of measured heights, and recomputes on
//     every change
//
// # Column Modes
//
// Exactly one mode is active per pass:
//
//   - Fixed: [FixedColumns] uses a constant count (clamped to at least 1)
//   - Breakpoints: [ResponsiveColumns] picks the count from the largest
//     threshold not exceeding the container width
//   - Auto: [AutoColumns] fits as many columns of at least MinWidth as the
//     container allows, floor((width+gap)/(minWidth+gap))
//
// Fixed and breakpoint modes take precedence over auto mode. Before the
// container is measured (width 0) there is always one column.
//
// # Item Heights
//
// Each item's height comes from, in order:
//
//  1. a height reported through [Engine.ReportMeasuredHeight]
//  2. the [SizeFunc] estimate scaled to the column width, preserving the
//     aspect ratio
//  3. the placeholder height
//
// Measurements are keyed by the [KeyFunc] result, so they follow an item
// through insertions and reorders. The default [IndexKey] keys by position
// and loses that property; supply a real identity whenever the list can
// change.
//
// # Usage
//
//	e := masonry.New(masonry.Config{
//	    Width:   1000,
//	    Gap:     16,
//	    Columns: masonry.AutoColumns(250),
//	}, masonry.WithKey(func(p Photo, _ int) masonry.Key {
//	    return masonry.StringKey(p.ID)
//	}))
//	e.SetItems(photos)
//
//	// later, when an image finishes loading
//	e.ReportMeasuredHeight(masonry.StringKey(id), 312)
//
//	for i, pos := range e.Positions() {
//	    draw(photos[i], pos)
//	}
//
// # Concurrency
//
// The engine is single-threaded and synchronous. Every trigger recomputes the
// whole layout before returning; nothing is debounced. Hosts that deliver
// high-frequency resize events should throttle them before calling
// [Engine.SetWidth].
package masonry
