// Package pkg provides the core libraries for Masonry waterfall layouts.
//
// # Overview
//
// Masonry places an ordered list of tiles into equal-width columns, each
// tile landing in the currently shortest column. The pkg directory is
// organized into these areas:
//
//  1. [masonry] - The layout engine (column resolution, packing, height cache)
//  2. [board] - Tile boards, their file formats and exported layouts
//  3. [render/sink] - Output formats (SVG, JSON, text)
//  4. [pipeline] - Orchestration (heights → layout → render) with caching
//  5. [cache] - Cache backends (file, Redis, MongoDB) and key derivation
//
// # Architecture
//
// The typical data flow:
//
//	board.json / board.toml
//	         ↓
//	    [board] package (tiles, keys, size hints)
//	         ↓
//	    [masonry] package (shortest-column placement)
//	         ↓
//	    [render/sink] package (SVG, JSON, text)
//
// Measured heights reported after rendering are persisted per board by
// [pipeline] and replace the aspect-ratio estimate on the next layout.
//
// # Quick Start
//
//	b, _ := board.ReadBoardFile("gallery.json")
//	e := b.NewEngine(masonry.Config{
//	    Width:   1200,
//	    Gap:     16,
//	    Columns: masonry.AutoColumns(250),
//	})
//	defer e.Close()
//
//	l := board.NewLayout(b, e.Snapshot())
//	svg := sink.RenderSVG(l, sink.WithLabels())
//
// # Supporting Packages
//
// [errors] - Coded errors (INVALID_INPUT, NOT_FOUND, ...) shared by the CLI
// and the HTTP API, plus input validation.
//
// [observability] - Hooks for layout, cache and HTTP events. No-ops unless
// a host installs its own.
//
// [buildinfo] - Version information injected at build time.
//
// [masonry]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/masonry
// [board]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/board
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/buildinfo
package pkg
