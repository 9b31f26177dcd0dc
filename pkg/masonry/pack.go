package masonry

// Position is the computed placement of one item. Width is the same for every
// item in a pass; Column is the zero-based column index.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Column int     `json:"column"`
}

// Bottom returns the lower edge of the item.
func (p Position) Bottom() float64 { return p.Y + p.Height }

// Pack places n items into count columns using shortest-column placement.
//
// Items are processed in order. Each goes into the column with the smallest
// running height, ties going to the lowest index, at x = column*(columnWidth+gap)
// and y = that column's running height; the column then grows by height+gap.
// height(i) supplies the resolved height of item i.
//
// The result has one entry per item in input order, or is empty when n or
// count is zero.
func Pack(n, count int, columnWidth, gap float64, height func(i int) float64) []Position {
	if n <= 0 || count <= 0 {
		return []Position{}
	}

	cols := make([]float64, count)
	out := make([]Position, n)
	stride := columnWidth + gap

	for i := range n {
		h := height(i)

		col := 0
		for c := 1; c < count; c++ {
			if cols[c] < cols[col] {
				col = c
			}
		}

		out[i] = Position{
			X:      float64(col) * stride,
			Y:      cols[col],
			Width:  columnWidth,
			Height: h,
			Column: col,
		}
		cols[col] += h + gap
	}
	return out
}

// ContainerHeight returns the vertical extent needed to contain every
// position: the maximum of Y+Height, or 0 when there are none.
func ContainerHeight(positions []Position) float64 {
	var maxY float64
	for _, p := range positions {
		if b := p.Bottom(); b > maxY {
			maxY = b
		}
	}
	return maxY
}
