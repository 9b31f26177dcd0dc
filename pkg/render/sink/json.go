package sink

import "github.com/matzehuels/masonry/pkg/board"

// RenderJSON encodes the layout document.
func RenderJSON(l board.Layout) ([]byte, error) {
	return board.MarshalLayout(l)
}
