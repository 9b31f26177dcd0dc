package board

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// Layout is the exported result of laying out a board.
type Layout struct {
	Board       string       `json:"board,omitempty"`
	Width       float64      `json:"width"`
	Gap         float64      `json:"gap"`
	ColumnCount int          `json:"column_count"`
	ColumnWidth float64      `json:"column_width"`
	Height      float64      `json:"height"`
	Tiles       []PlacedTile `json:"tiles"`
}

// PlacedTile is a tile with its computed position.
type PlacedTile struct {
	ID     string  `json:"id,omitempty"`
	Label  string  `json:"label,omitempty"`
	Color  string  `json:"color,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Column int     `json:"column"`
}

// NewLayout pairs a board's tiles with an engine snapshot. The snapshot must
// have been computed from b.Tiles.
func NewLayout(b Board, l masonry.Layout) Layout {
	out := Layout{
		Board:       b.Name,
		Width:       l.Width,
		Gap:         l.Gap,
		ColumnCount: l.ColumnCount,
		ColumnWidth: l.ColumnWidth,
		Height:      l.ContainerHeight,
		Tiles:       make([]PlacedTile, 0, len(l.Positions)),
	}
	for i, p := range l.Positions {
		var t Tile
		if i < len(b.Tiles) {
			t = b.Tiles[i]
		}
		out.Tiles = append(out.Tiles, PlacedTile{
			ID:     t.ID,
			Label:  t.DisplayLabel(i),
			Color:  t.Color,
			X:      p.X,
			Y:      p.Y,
			Width:  p.Width,
			Height: p.Height,
			Column: p.Column,
		})
	}
	return out
}

// MarshalLayout encodes a layout as indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout decodes a layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if l.Tiles == nil {
		l.Tiles = []PlacedTile{}
	}
	return l, nil
}

// WriteLayoutFile writes a layout as JSON.
func WriteLayoutFile(path string, l Layout) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadLayoutFile reads a layout written by [WriteLayoutFile].
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return UnmarshalLayout(data)
}
