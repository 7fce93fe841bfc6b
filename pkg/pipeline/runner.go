package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtile/pkg/cache"
	"github.com/matzehuels/gridtile/pkg/observability"
	"github.com/matzehuels/gridtile/pkg/render"
	"github.com/matzehuels/gridtile/pkg/render/sink"
	"github.com/matzehuels/gridtile/pkg/scene"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete load → tile → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	loadStart := time.Now()
	s, err := r.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	result, err := r.Run(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Run tiles and renders an already loaded scene.
func (r *Runner) Run(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Scene: s}
	if data, err := s.Canonical(); err == nil {
		result.SceneHash = cache.Hash(data)
	}

	// Stage 1: Tile
	tileStart := time.Now()
	layout, tileHit, err := r.TileWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("tile: %w", err)
	}
	result.Layout = layout
	result.Stats.TileTime = time.Since(tileStart)
	result.Stats.WidgetCount = len(s.Widgets)
	result.Stats.PlacedCount = len(layout.Placements)
	result.Stats.RejectedCount = len(layout.Rejected)
	result.CacheInfo.TileHit = tileHit

	r.Logger.Info("tiled scene",
		"scene", s.Name,
		"placed", result.Stats.PlacedCount,
		"rejected", result.Stats.RejectedCount,
		"duration", result.Stats.TileTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
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

// Load reads a scene file and reports the load to the pipeline hooks.
func (r *Runner) Load(ctx context.Context, path string) (*scene.Scene, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	s, err := Load(path)
	widgets := 0
	if s != nil {
		widgets = len(s.Widgets)
	}
	hooks.OnLoadComplete(ctx, path, widgets, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded scene", "path", path, "rows", s.Rows, "columns", s.Columns, "widgets", widgets)
	return s, nil
}

// TileWithCacheInfo tiles a scene with caching and returns cache hit info.
func (r *Runner) TileWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) (render.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForTile(); err != nil {
		return render.Layout{}, false, err
	}
	if err := ctx.Err(); err != nil {
		return render.Layout{}, false, err
	}

	sceneData, err := s.Canonical()
	if err != nil {
		return render.Layout{}, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(sceneData), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := render.ParseLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	hooks := observability.Pipeline()
	hooks.OnTileStart(ctx, s.Name, s.Rows, s.Columns)
	start := time.Now()
	layout, err := Tile(s, opts)
	hooks.OnTileComplete(ctx, s.Name, len(layout.Rejected), time.Since(start), err)
	if err != nil {
		return render.Layout{}, false, err
	}

	if data, err := sink.RenderJSON(layout, sink.WithJSONCompact()); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache layout", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return layout, false, nil
}

// Tile is a convenience wrapper that calls TileWithCacheInfo and discards the cache hit info.
func (r *Runner) Tile(ctx context.Context, s *scene.Scene, opts Options) (render.Layout, error) {
	layout, _, err := r.TileWithCacheInfo(ctx, s, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout render.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from layout data
	layoutData, err := sink.RenderJSON(layout, sink.WithJSONCompact())
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
				break
			}
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout render.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
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
