package board

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// aspects are the width:height ratios of generated tiles.
var aspects = [][2]float64{
	{1, 1}, {4, 3}, {3, 4}, {16, 9}, {9, 16}, {3, 2}, {2, 3}, {1, 2},
}

// palette holds the fill colors of generated tiles.
var palette = []string{
	"#f94144", "#f3722c", "#f8961e", "#f9c74f",
	"#90be6d", "#43aa8b", "#577590", "#277da1",
}

// Generate returns a board of n tiles with varied aspect ratios. The same
// seed always yields the same board, IDs included.
func Generate(name string, n int, seed uint64) Board {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	b := Board{Name: name, Tiles: make([]Tile, 0, max(n, 0))}
	for i := range n {
		a := aspects[rng.IntN(len(aspects))]
		scale := 200 + float64(rng.IntN(9))*100
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			id = uuid.New()
		}
		b.Tiles = append(b.Tiles, Tile{
			ID:     id.String(),
			Label:  fmt.Sprintf("Tile %d", i+1),
			Width:  a[0] * scale,
			Height: a[1] * scale,
			Color:  palette[rng.IntN(len(palette))],
		})
	}
	return b
}
