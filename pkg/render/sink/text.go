package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/masonry/pkg/board"
)

// DefaultTextColumns is the canvas width used by [RenderText].
const DefaultTextColumns = 80

// DefaultTextRows caps the canvas height. Tiles below the cap are dropped and
// tiles crossing it are cut off at the last row.
const DefaultTextRows = 2000

type TextOption func(*textRenderer)

type textRenderer struct {
	cols int
	rows int
}

// WithTextColumns sets the canvas width in characters.
func WithTextColumns(cols int) TextOption {
	return func(r *textRenderer) {
		if cols > 0 {
			r.cols = cols
		}
	}
}

// WithTextRows sets the maximum canvas height in characters.
func WithTextRows(rows int) TextOption {
	return func(r *textRenderer) {
		if rows > 1 {
			r.rows = rows
		}
	}
}

// RenderText draws the layout as boxes on a character canvas. The layout is
// scaled to the canvas width; rows use half the horizontal scale since
// terminal cells are about twice as tall as they are wide.
func RenderText(l board.Layout, opts ...TextOption) []byte {
	r := textRenderer{cols: DefaultTextColumns, rows: DefaultTextRows}
	for _, opt := range opts {
		opt(&r)
	}
	if l.Width <= 0 || len(l.Tiles) == 0 {
		return nil
	}

	sx := float64(r.cols) / l.Width
	sy := sx / 2
	limit := float64(r.rows)

	var c canvas
	for _, t := range l.Tiles {
		x0 := int(math.Round(t.X * sx))
		x1 := max(int(math.Round((t.X+t.Width)*sx))-1, x0+1)
		// Scaled rows are clamped before conversion so huge heights cannot
		// overflow int.
		y0 := int(math.Round(min(t.Y*sy, limit)))
		y1 := max(int(math.Round(min((t.Y+t.Height)*sy, limit)))-1, y0+1)
		x1 = min(x1, r.cols-1)
		y1 = min(y1, r.rows-1)
		if x1 <= x0 || y1 <= y0 {
			continue
		}
		c.box(x0, y0, x1, y1)
		if y1-y0 >= 2 {
			c.text(x0+1, y0+1, t.Label, x1-x0-1)
		}
	}
	return c.bytes()
}

// canvas is a grid of runes that grows downward on demand.
type canvas struct {
	rows [][]rune
}

func (c *canvas) set(x, y int, ch rune) {
	for len(c.rows) <= y {
		c.rows = append(c.rows, nil)
	}
	row := c.rows[y]
	for len(row) <= x {
		row = append(row, ' ')
	}
	row[x] = ch
	c.rows[y] = row
}

func (c *canvas) box(x0, y0, x1, y1 int) {
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '-')
		c.set(x, y1, '-')
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '|')
		c.set(x1, y, '|')
	}
	for _, p := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		c.set(p[0], p[1], '+')
	}
}

func (c *canvas) text(x, y int, s string, limit int) {
	i := 0
	for _, ch := range s {
		if i >= limit {
			break
		}
		c.set(x+i, y, ch)
		i++
	}
}

func (c *canvas) bytes() []byte {
	var sb strings.Builder
	for _, row := range c.rows {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}
