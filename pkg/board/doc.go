// Package board defines the tile board that masonry lays out, and the files
// it is read from and written to.
//
// A [Board] is a named, ordered list of [Tile] values. Each tile carries an
// optional size estimate (Width × Height, only the ratio matters) and an
// optional measured height discovered after rendering. Boards are stored as
// JSON or TOML; the extension selects the codec:
//
//	name = "gallery"
//
//	[[tiles]]
//	id = "sunset"
//	width = 1600
//	height = 900
//
// Tiles are keyed for the engine by [Key]: the tile ID when set, otherwise
// the tile's index. Index keys follow the tile's position, so reordering a
// board whose tiles have no IDs moves measurements to the wrong tiles.
//
// A computed layout is exported as a [Layout], the JSON document written by
// "masonry layout" and served by the HTTP API.
package board
