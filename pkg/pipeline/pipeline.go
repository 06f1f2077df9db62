// Package pipeline provides the core rendering pipeline for stackplot.
//
// This package implements the complete decode → layout → render pipeline
// used by both the CLI and the preview server. Centralizing this logic
// keeps caching and defaulting behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read a chart document (JSON or TOML) into the data model
//  2. Layout: Compute axis scale, geometry, colors, and label placement
//  3. Render: Serialize to the requested formats (SVG, PNG, PDF, JSON)
//
// Layout is linear in the number of segments and always recomputed;
// only rendered artifacts are cached (PNG/PDF conversion shells out to
// rsvg-convert, which is worth skipping on a hit).
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil)
//	opts := pipeline.Options{
//	    Input:   "revenue.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stackplot/stackplot/pkg/chart"
	"github.com/stackplot/stackplot/pkg/render/bar"
)

// DefaultArtifactTTL is how long rendered artifacts stay cached.
const DefaultArtifactTTL = 24 * time.Hour

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// Options contains all configuration for the rendering pipeline.
type Options struct {
	// Input is the chart document path ("-" for stdin). Ignored when
	// Chart is set.
	Input string `json:"input,omitempty"`

	// Chart is a pre-decoded chart; skips the decode stage.
	Chart *chart.Chart `json:"-"`

	// Config is the render configuration; zero fields take defaults.
	Config chart.Config `json:"config"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	NoGridlines bool     `json:"no_gridlines,omitempty"`
	Background  string   `json:"background,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Chart == nil && o.Input == "" {
		return fmt.Errorf("chart or input is required")
	}

	o.Config = o.Config.Normalize()
	if err := o.Config.Validate(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the decoded chart.
	Chart *chart.Chart

	// ChartHash is the content hash of the chart plus its normalized
	// configuration; it keys the artifact cache.
	ChartHash string

	// RenderID uniquely identifies this pipeline run (for logs and the
	// preview server's response headers).
	RenderID string

	// Layout is the computed geometry.
	Layout bar.Layout

	// Labels is the computed text placement.
	Labels bar.Labels

	// Colors maps each legend key to its hex color.
	Colors map[string]string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Categories int
	LegendKeys int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	// ArtifactHits records, per format, whether the artifact came from
	// cache.
	ArtifactHits map[string]bool
}

// AllHit reports whether every requested artifact came from cache.
func (ci CacheInfo) AllHit() bool {
	if len(ci.ArtifactHits) == 0 {
		return false
	}
	for _, hit := range ci.ArtifactHits {
		if !hit {
			return false
		}
	}
	return true
}
