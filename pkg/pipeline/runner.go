package pipeline

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeHeights  = "heights"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Reads are safe from multiple goroutines, but
// height updates are read-modify-write: callers that report heights for the
// same board concurrently must serialize those calls.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, b board.Board, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, b, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.TileCount = len(l.Tiles)
	result.Stats.ColumnCount = l.ColumnCount
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"tiles", len(l.Tiles),
		"columns", l.ColumnCount,
		"height", l.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out a board with caching and returns cache hit info.
//
// Heights persisted for the board's name are merged with the tiles' own
// measurements; if the merge changes anything, the merged set is persisted
// again. Boards without a name use tile measurements only.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, b board.Board, opts Options) (board.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return board.Layout{}, false, err
	}
	if err := b.Validate(); err != nil {
		return board.Layout{}, false, err
	}

	persisted, err := r.LoadHeights(ctx, b.Name)
	if err != nil {
		return board.Layout{}, false, err
	}
	merged := MergeHeights(b, persisted)
	if b.Name != "" && !maps.Equal(merged, persisted) {
		if err := r.saveHeights(ctx, b.Name, merged); err != nil {
			r.Logger.Warn("persist heights", "board", b.Name, "error", err)
		}
	}

	boardHash, err := cache.HashJSON(b.Tiles)
	if err != nil {
		return board.Layout{}, false, fmt.Errorf("hash board: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(boardHash, opts.LayoutKeyOpts(hashHeights(merged)))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := board.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				cached.Board = b.Name
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	l := GenerateLayout(b, merged, opts)

	if data, err := board.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, b board.Board, opts Options) (board.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, b, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l board.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutHash, err := cache.HashJSON(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	rendered, err := Render(l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l board.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// =============================================================================
// Measured Heights
// =============================================================================

// LoadHeights returns the heights persisted for a board. An empty name, a
// miss or an unreadable entry yields an empty map.
func (r *Runner) LoadHeights(ctx context.Context, name string) (map[masonry.Key]float64, error) {
	if name == "" {
		return map[masonry.Key]float64{}, nil
	}
	if err := errors.ValidateBoardName(name); err != nil {
		return nil, err
	}

	data, hit, err := r.Cache.Get(ctx, r.Keyer.HeightsKey(name))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "load heights for %s", name)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeHeights)
		return map[masonry.Key]float64{}, nil
	}
	observability.Cache().OnCacheHit(ctx, keyTypeHeights)

	heights, err := DecodeHeights(data)
	if err != nil {
		r.Logger.Warn("discarding unreadable heights", "board", name, "error", err)
		return map[masonry.Key]float64{}, nil
	}
	return heights, nil
}

// ReportHeights merges measured heights into the board's persisted set and
// returns how many entries changed. Keys are tile IDs, or "i:<index>" for
// tiles without one. Negative and non-finite heights are ignored, as the
// engine ignores them.
func (r *Runner) ReportHeights(ctx context.Context, name string, reported map[string]float64) (int, error) {
	if err := errors.ValidateBoardName(name); err != nil {
		return 0, err
	}
	parsed, err := ParseHeights(reported)
	if err != nil {
		return 0, err
	}
	persisted, err := r.LoadHeights(ctx, name)
	if err != nil {
		return 0, err
	}

	h := masonry.NewHeights()
	for k, v := range persisted {
		h.Set(k, v)
	}
	changed := 0
	for k, v := range parsed {
		if h.Set(k, v) {
			changed++
		}
	}

	if changed > 0 {
		if err := r.saveHeights(ctx, name, h.Snapshot()); err != nil {
			return 0, err
		}
	}
	r.Logger.Debug("reported heights", "board", name, "reported", len(reported), "changed", changed)
	return changed, nil
}

// ClearHeights forgets every height persisted for a board.
func (r *Runner) ClearHeights(ctx context.Context, name string) error {
	if err := errors.ValidateBoardName(name); err != nil {
		return err
	}
	return r.Cache.Delete(ctx, r.Keyer.HeightsKey(name))
}

func (r *Runner) saveHeights(ctx context.Context, name string, heights map[masonry.Key]float64) error {
	data, err := EncodeHeights(heights)
	if err != nil {
		return err
	}
	if err := r.Cache.Set(ctx, r.Keyer.HeightsKey(name), data, cache.TTLHeights); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "save heights for %s", name)
	}
	observability.Cache().OnCacheSet(ctx, keyTypeHeights, len(data))
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
