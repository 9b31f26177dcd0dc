package pipeline

import (
	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs the engine over the board's tiles with the given
// measured heights and returns the exported layout. Tile-recorded
// measurements are applied on top of heights.
func GenerateLayout(b board.Board, heights map[masonry.Key]float64, opts Options) board.Layout {
	e := b.NewEngine(opts.EngineConfig(),
		masonry.WithHeights[board.Tile](MergeHeights(b, heights)),
		masonry.WithLogger[board.Tile](opts.Logger),
	)
	defer e.Close()
	return board.NewLayout(b, e.Snapshot())
}

// MergeHeights returns heights with the board's tile-recorded measurements
// applied, following the engine's rules: invalid values are ignored.
func MergeHeights(b board.Board, heights map[masonry.Key]float64) map[masonry.Key]float64 {
	h := masonry.NewHeights()
	for k, v := range heights {
		h.Set(k, v)
	}
	for i, t := range b.Tiles {
		if t.Measured > 0 {
			h.Set(board.Key(t, i), t.Measured)
		}
	}
	return h.Snapshot()
}
