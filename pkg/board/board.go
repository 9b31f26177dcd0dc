package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// Tile is one item on a board.
type Tile struct {
	ID       string  `json:"id,omitempty" toml:"id,omitempty"`
	Label    string  `json:"label,omitempty" toml:"label,omitempty"`
	Width    float64 `json:"width,omitempty" toml:"width,omitempty"`
	Height   float64 `json:"height,omitempty" toml:"height,omitempty"`
	Measured float64 `json:"measured,omitempty" toml:"measured,omitempty"`
	Color    string  `json:"color,omitempty" toml:"color,omitempty"`
}

// Board is a named, ordered list of tiles.
type Board struct {
	Name  string `json:"name,omitempty" toml:"name,omitempty"`
	Tiles []Tile `json:"tiles" toml:"tiles"`
}

// Key returns the engine key of a tile: its ID, or its index when the ID is
// empty.
func Key(t Tile, index int) masonry.Key {
	if t.ID == "" {
		return masonry.IntKey(index)
	}
	return masonry.StringKey(t.ID)
}

// Size returns the size estimate of a tile, if both dimensions are set.
func Size(t Tile, _ int) (masonry.Size, bool) {
	if t.Width <= 0 || t.Height <= 0 {
		return masonry.Size{}, false
	}
	return masonry.Size{Width: t.Width, Height: t.Height}, true
}

// DisplayLabel returns the label, the ID, or "#index", whichever is set first.
func (t Tile) DisplayLabel(index int) string {
	switch {
	case t.Label != "":
		return t.Label
	case t.ID != "":
		return t.ID
	default:
		return fmt.Sprintf("#%d", index)
	}
}

// NewEngine builds an engine over the board's tiles, keyed by [Key] and
// estimated by [Size]. Measured heights stored on the tiles seed the height
// cache; opts are applied after that.
func (b *Board) NewEngine(cfg masonry.Config, opts ...masonry.Option[Tile]) *masonry.Engine[Tile] {
	base := []masonry.Option[Tile]{
		masonry.WithKey(Key),
		masonry.WithSize(Size),
	}
	if h := b.MeasuredHeights(); len(h) > 0 {
		base = append(base, masonry.WithHeights[Tile](h))
	}
	e := masonry.New(cfg, append(base, opts...)...)
	e.SetItems(b.Tiles)
	return e
}

// MeasuredHeights returns the measured heights recorded on the tiles.
func (b *Board) MeasuredHeights() map[masonry.Key]float64 {
	m := make(map[masonry.Key]float64)
	for i, t := range b.Tiles {
		if t.Measured > 0 {
			m[Key(t, i)] = t.Measured
		}
	}
	return m
}

// Validate reports duplicate tile IDs and invalid sizes.
func (b *Board) Validate() error {
	subject := "board"
	if b.Name != "" {
		subject = "board " + b.Name
		if err := errors.ValidateBoardName(b.Name); err != nil {
			return err
		}
	}
	verr := &errors.ValidationError{Subject: subject}

	seen := make(map[string]int, len(b.Tiles))
	for i, t := range b.Tiles {
		if err := errors.ValidateTileID(t.ID); err != nil {
			verr.Addf("tile %d: %s", i, errors.UserMessage(err))
		}
		if t.ID != "" {
			if j, dup := seen[t.ID]; dup {
				verr.Addf("tile %d: duplicate id %q (first at %d)", i, t.ID, j)
			} else {
				seen[t.ID] = i
			}
		}
		for _, f := range []struct {
			name string
			v    float64
		}{{"width", t.Width}, {"height", t.Height}, {"measured", t.Measured}} {
			if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
				verr.Addf("tile %d: invalid %s %v", i, f.name, f.v)
			}
		}
	}
	return verr.Err()
}

// ===== Encoding =====

// Format names accepted by [Marshal] and [Unmarshal].
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFromPath returns the board format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported board file extension %q (use .json or .toml)", ext)
	}
}

// Marshal encodes a board in the given format.
func Marshal(b Board, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(b, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(b); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported board format %q", format)
	}
}

// Unmarshal decodes a board in the given format.
func Unmarshal(data []byte, format string) (Board, error) {
	var b Board
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &b)
	case FormatTOML:
		err = toml.Unmarshal(data, &b)
	default:
		return Board{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported board format %q", format)
	}
	if err != nil {
		return Board{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s board", format)
	}
	return b, nil
}

// ReadBoardFile reads and validates a board file. A board without a name is
// named after the file.
func ReadBoardFile(path string) (Board, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Board{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Board{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "board file %s", path)
	}
	if err != nil {
		return Board{}, fmt.Errorf("read board: %w", err)
	}

	b, err := Unmarshal(data, format)
	if err != nil {
		return Board{}, err
	}
	if b.Name == "" {
		b.Name = NameFromPath(path)
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// WriteBoardFile writes a board in the format implied by path.
func WriteBoardFile(path string, b Board) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(b, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// NameFromPath derives a board name from a file path: the base name without
// its extension(s), e.g. "photos.board.toml" → "photos". Characters not
// allowed in board names become '-'.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '-'
	}, base)
}
