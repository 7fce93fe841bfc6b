// Package pipeline provides the load → tile → render pipeline for gridtile.
//
// This package is shared by the CLI commands and the HTTP service so both
// resolve defaults, cache keys and output formats the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate a scene file (TOML or JSON)
//  2. Tile: Build the grid, place the widgets and resolve every line
//  3. Render: Generate output in the requested formats (JSON, SVG, TXT)
//
// Each stage can be run independently or as part of the complete pipeline.
// Tiled layouts and rendered artifacts are cached by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, "login.toml", pipeline.Options{
//	    Width:   800,
//	    Formats: []string{"svg", "txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	s, err := runner.Load(ctx, "login.toml")
//	layout, err := runner.Tile(ctx, s, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtile/pkg/cache"
	"github.com/matzehuels/gridtile/pkg/errors"
	"github.com/matzehuels/gridtile/pkg/render"
	"github.com/matzehuels/gridtile/pkg/render/sink"
	"github.com/matzehuels/gridtile/pkg/render/styles"
	"github.com/matzehuels/gridtile/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the container width used when neither the scene nor
	// the options give one.
	DefaultWidth = scene.DefaultWidth

	// DefaultHeight is the container height used when neither the scene nor
	// the options give one.
	DefaultHeight = scene.DefaultHeight

	// DefaultStyle is the default SVG style.
	DefaultStyle = styles.NameSimple

	// MaxSize bounds container size overrides.
	MaxSize = 1 << 16
)

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{sink.FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Tile options; zero values keep what the scene declares.
	Width   int  `json:"width,omitempty"`
	Height  int  `json:"height,omitempty"`
	Spacing *int `json:"spacing,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Labels    bool     `json:"labels,omitempty"`
	GridLines bool     `json:"grid_lines,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the loaded scene, before overrides.
	Scene *scene.Scene

	// SceneHash is the content hash of the scene.
	SceneHash string

	// Layout is the tiled layout.
	Layout render.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WidgetCount   int
	PlacedCount   int
	RejectedCount int
	LoadTime      time.Duration
	TileTime      time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TileHit   bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !sink.Supported(format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !slices.Contains(styles.Names, style) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid style: %q (must be one of: simple, wireframe)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetTileDefaults sets default values for tiling.
func (o *Options) SetTileDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForTile validates and sets defaults for tiling.
func (o *Options) ValidateForTile() error {
	o.SetTileDefaults()
	if o.Width < 0 || o.Height < 0 || o.Width > MaxSize || o.Height > MaxSize {
		return errors.New(errors.ErrCodeInvalidInput, "size %dx%d out of range (0 to %d)", o.Width, o.Height, MaxSize)
	}
	if o.Spacing != nil && *o.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "spacing %d is negative", *o.Spacing)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// ValidateAndSetDefaults checks and defaults the options for the full
// pipeline. Calling it twice has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForTile(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns cache key options for tiling.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:   o.Width,
		Height:  o.Height,
		Spacing: o.Spacing,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == sink.FormatSVG {
		k.Style = o.Style
		k.Labels = o.Labels
		k.GridLines = o.GridLines
	}
	return k
}

// SinkOptions returns the options passed to [sink.Render].
func (o *Options) SinkOptions() sink.Options {
	return sink.Options{
		Style:     o.Style,
		Labels:    o.Labels,
		GridLines: o.GridLines,
	}
}
