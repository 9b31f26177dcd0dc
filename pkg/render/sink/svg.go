package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/masonry/pkg/board"
)

// DefaultTileColor fills tiles that carry no color of their own.
const DefaultTileColor = "#cbd5e1"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	background string
	radius     float64
}

// WithLabels draws each tile's label in its top-left corner.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithBackground fills the container with color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithCornerRadius rounds tile corners.
func WithCornerRadius(radius float64) SVGOption {
	return func(r *svgRenderer) { r.radius = max(radius, 0) }
}

// RenderSVG draws the layout as an SVG document whose view box is the
// container: layout width by container height.
func RenderSVG(l board.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{radius: 4}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}

	for i, t := range l.Tiles {
		renderTile(&buf, &r, i, t)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTile(buf *bytes.Buffer, r *svgRenderer, i int, t board.PlacedTile) {
	fill := t.Color
	if fill == "" {
		fill = DefaultTileColor
	}
	id := t.ID
	if id == "" {
		id = fmt.Sprint(i)
	}

	fmt.Fprintf(buf, `  <rect class="tile" id="tile-%s" data-column="%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"/>`+"\n",
		html.EscapeString(id), t.Column, t.X, t.Y, t.Width, t.Height, r.radius, html.EscapeString(fill))

	if r.labels && t.Label != "" {
		fmt.Fprintf(buf, `  <text class="tile-label" x="%.1f" y="%.1f" font-family="sans-serif" font-size="12">%s</text>`+"\n",
			t.X+8, t.Y+18, html.EscapeString(t.Label))
	}
}
