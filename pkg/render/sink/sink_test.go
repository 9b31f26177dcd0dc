package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/masonry/pkg/board"
)

func twoTiles() board.Layout {
	return board.Layout{
		Width:       20,
		Gap:         2,
		ColumnCount: 2,
		ColumnWidth: 9,
		Height:      8,
		Tiles: []board.PlacedTile{
			{ID: "a", Label: "a", X: 0, Y: 0, Width: 9, Height: 6, Column: 0},
			{ID: "b", Label: "b", X: 11, Y: 0, Width: 9, Height: 8, Column: 1, Color: "#277da1"},
		},
	}
}

func TestRenderText(t *testing.T) {
	got := string(RenderText(twoTiles(), WithTextColumns(20)))
	want := strings.Join([]string{
		"+-------+  +-------+",
		"|a      |  |b      |",
		"+-------+  |       |",
		"           +-------+",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("RenderText:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTextEmpty(t *testing.T) {
	if out := RenderText(board.Layout{Width: 100}); len(out) != 0 {
		t.Errorf("empty layout should render nothing, got %q", out)
	}
	if out := RenderText(board.Layout{Tiles: twoTiles().Tiles}); len(out) != 0 {
		t.Errorf("zero width should render nothing, got %q", out)
	}
}

func TestRenderTextHugeHeight(t *testing.T) {
	l := board.Layout{
		Width:       20,
		ColumnCount: 1,
		ColumnWidth: 20,
		Height:      3e20 + 12,
		Tiles: []board.PlacedTile{
			{ID: "a", Label: "a", X: 0, Y: 0, Width: 20, Height: 3e20},
			{ID: "b", Label: "b", X: 0, Y: 3e20 + 2, Width: 20, Height: 10},
		},
	}

	lines := strings.Split(strings.TrimRight(string(RenderText(l, WithTextColumns(20))), "\n"), "\n")
	if len(lines) != DefaultTextRows {
		t.Fatalf("rows = %d, want capped at %d", len(lines), DefaultTextRows)
	}
	if lines[0] != "+------------------+" || lines[len(lines)-1] != "+------------------+" {
		t.Errorf("tile a should be cut off at the last row, got %q ... %q", lines[0], lines[len(lines)-1])
	}

	out := string(RenderText(l, WithTextColumns(20), WithTextRows(5)))
	want := strings.Join([]string{
		"+------------------+",
		"|a                 |",
		"|                  |",
		"|                  |",
		"+------------------+",
	}, "\n") + "\n"
	if out != want {
		t.Errorf("RenderText with 5 rows:\n%s\nwant:\n%s", out, want)
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(twoTiles(), WithLabels(), WithBackground("#fff")))

	checks := []string{
		`viewBox="0 0 20.0 8.0"`,
		`id="tile-a"`,
		`fill="` + DefaultTileColor + `"`,
		`fill="#277da1"`,
		`data-column="1"`,
		`<rect width="100%" height="100%" fill="#fff"/>`,
		`>b</text>`,
	}
	for _, c := range checks {
		if !strings.Contains(svg, c) {
			t.Errorf("SVG missing %q", c)
		}
	}
	if n := strings.Count(svg, `class="tile"`); n != 2 {
		t.Errorf("tile count = %d, want 2", n)
	}
}

func TestRenderSVGEscapes(t *testing.T) {
	l := board.Layout{Width: 10, Height: 10, Tiles: []board.PlacedTile{
		{ID: `"x"`, Label: "<b>", Width: 10, Height: 10},
	}}
	svg := string(RenderSVG(l, WithLabels()))
	if strings.Contains(svg, "<b>") || strings.Contains(svg, `id="tile-"x""`) {
		t.Errorf("unescaped output:\n%s", svg)
	}
}

func TestRenderSVGWithoutLabels(t *testing.T) {
	if strings.Contains(string(RenderSVG(twoTiles())), "<text") {
		t.Error("labels should be off by default")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(twoTiles())
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, k := range []string{"width", "gap", "column_count", "column_width", "height", "tiles"} {
		if _, ok := decoded[k]; !ok {
			t.Errorf("missing key %q", k)
		}
	}
}
