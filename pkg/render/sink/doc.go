// Package sink turns a computed board layout into output artifacts.
//
// Supported formats:
//
//   - SVG: one rectangle per tile, sized to the container height
//   - JSON: the layout document itself
//   - Text: a character canvas for terminals
//
// All sinks are pure functions of a [board.Layout] and produce identical
// bytes for identical layouts, so their output can be cached by layout hash.
package sink
