package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stackplot/stackplot/pkg/cache"
	"github.com/stackplot/stackplot/pkg/chart"
	"github.com/stackplot/stackplot/pkg/observability"
	"github.com/stackplot/stackplot/pkg/render/bar"
	"github.com/stackplot/stackplot/pkg/render/bar/sink"
	"github.com/stackplot/stackplot/pkg/source"
)

// Runner executes the rendering pipeline with caching.
type Runner struct {
	cache cache.Cache
	keyer cache.Keyer
}

// NewRunner creates a pipeline runner. A nil cache disables caching and
// a nil keyer uses the default key layout.
func NewRunner(c cache.Cache, keyer cache.Keyer) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Runner{cache: c, keyer: keyer}
}

// Execute runs the full pipeline: decode the chart document, compute the
// layout, and render every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{
		RenderID:  uuid.NewString(),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheInfo: CacheInfo{ArtifactHits: make(map[string]bool, len(opts.Formats))},
	}

	// Stage 1: decode
	c, decodeTime, err := r.decode(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = c
	result.Stats.DecodeTime = decodeTime
	result.Stats.Categories = len(c.Categories)
	result.Stats.LegendKeys = len(c.LegendKeys())

	result.ChartHash, err = chartHash(c, opts.Config)
	if err != nil {
		return nil, err
	}

	// Stage 2: layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, result.Stats.Categories, result.Stats.LegendKeys)

	layout, err := bar.Build(c, opts.Config)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, time.Since(layoutStart), err)
		return nil, err
	}
	if layout.Scale.Degenerate {
		logger.Warn("all category totals are zero; using fallback axis scale",
			"max", layout.Scale.Max)
	}
	result.Layout = layout
	result.Labels = bar.PlaceLabels(layout, c, opts.Config)

	result.Colors, err = bar.Colors(c.LegendKeys(), opts.Config.Palette, opts.Config.AutoFill)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, time.Since(layoutStart), err)
		return nil, err
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, result.Stats.LayoutTime, nil)
	logger.Debug("layout computed",
		"render_id", result.RenderID,
		"categories", result.Stats.Categories,
		"legend_keys", result.Stats.LegendKeys,
		"axis_max", layout.Scale.Max,
		"duration", result.Stats.LayoutTime)

	// Stage 3: render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, hit, err := r.renderFormat(ctx, format, result, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, err
		}
		result.Artifacts[format] = data
		result.CacheInfo.ArtifactHits[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)
	logger.Debug("render complete",
		"render_id", result.RenderID,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) decode(ctx context.Context, opts Options) (*chart.Chart, time.Duration, error) {
	if opts.Chart != nil {
		if err := opts.Chart.Validate(); err != nil {
			return nil, 0, err
		}
		return opts.Chart, 0, nil
	}

	start := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, opts.Input)
	c, err := source.ImportFile(opts.Input)
	elapsed := time.Since(start)
	categories := 0
	if c != nil {
		categories = len(c.Categories)
	}
	observability.Pipeline().OnDecodeComplete(ctx, opts.Input, categories, elapsed, err)
	if err != nil {
		return nil, elapsed, err
	}
	opts.Logger.Debug("chart decoded",
		"input", opts.Input,
		"categories", categories,
		"duration", elapsed)
	return c, elapsed, nil
}

// renderFormat renders one output format, consulting the artifact cache
// first. The returned bool reports a cache hit.
func (r *Runner) renderFormat(ctx context.Context, format string, result *Result, opts Options) ([]byte, bool, error) {
	key := r.keyer.ArtifactKey(result.ChartHash, cache.ArtifactKeyOpts{
		Format:    format,
		Gridlines: !opts.NoGridlines,
		AutoFill:  opts.Config.AutoFill,
	})

	if data, hit, err := r.cache.Get(ctx, key); err != nil {
		opts.Logger.Warn("cache read failed", "key_type", "artifact", "error", err)
	} else if hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	} else {
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	data, err := r.render(format, result, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.cache.Set(ctx, key, data, DefaultArtifactTTL); err != nil {
		opts.Logger.Warn("cache write failed", "key_type", "artifact", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

func (r *Runner) render(format string, result *Result, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		doc := sink.BuildSVG(result.Layout, result.Labels, result.Colors, r.svgOptions(opts)...)
		return doc.Bytes(), nil
	case FormatPNG:
		return sink.RenderPNG(result.Layout, result.Labels, result.Colors,
			sink.WithPNGSVGOptions(r.svgOptions(opts)...))
	case FormatPDF:
		return sink.RenderPDF(result.Layout, result.Labels, result.Colors,
			sink.WithPDFSVGOptions(r.svgOptions(opts)...))
	case FormatJSON:
		return sink.RenderJSON(result.Layout, result.Colors)
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

func (r *Runner) svgOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Config.FontFamily != "" {
		svgOpts = append(svgOpts, sink.WithFontFamily(opts.Config.FontFamily))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.NoGridlines {
		svgOpts = append(svgOpts, sink.WithoutGridlines())
	}
	return svgOpts
}

// chartHash computes the cache identity of a chart document under a
// normalized configuration.
func chartHash(c *chart.Chart, cfg chart.Config) (string, error) {
	payload, err := json.Marshal(struct {
		Chart  *chart.Chart `json:"chart"`
		Config chart.Config `json:"config"`
	}{c, cfg})
	if err != nil {
		return "", err
	}
	return cache.Hash(payload), nil
}
