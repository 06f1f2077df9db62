package bar

import (
	"github.com/stackplot/stackplot/pkg/chart"
	"github.com/stackplot/stackplot/pkg/errors"
)

// Legend geometry constants, in pixels.
const (
	legendSwatchSize = 12.0
	legendRowGap     = 8.0
	legendPad        = 16.0
)

// minSlotWidth is the narrowest category slot the planner will accept.
// Anything smaller means the canvas cannot meaningfully hold the chart.
const minSlotWidth = 1.0

// Rect is an axis-aligned rectangle in SVG user units (y grows down).
type Rect struct {
	X, Y, W, H float64
}

// SegmentBox is one stacked rectangle within a bar.
type SegmentBox struct {
	Key   string  // segment name, identical across categories
	Value float64 // source data value
	Rect  Rect    // zero-height rects are legal for zero values
}

// Bar is one category's geometry: its slot position and stacked segments.
type Bar struct {
	Label    string
	X, Width float64
	Total    float64
	Segments []SegmentBox
}

// Tick is one value-axis tick: the data value and its pixel Y.
type Tick struct {
	Value float64
	Y     float64
}

// LegendEntry pairs a legend key with its swatch rectangle.
type LegendEntry struct {
	Key    string
	Swatch Rect
}

// Layout is the complete computed geometry for one render. It is a plain
// value: recomputed every render, never mutated, never shared.
type Layout struct {
	FrameWidth  float64
	FrameHeight float64
	Plot        Rect
	Scale       AxisScale
	Bars        []Bar
	Ticks       []Tick
	Legend      []LegendEntry
}

// SlotWidth returns the horizontal span reserved per category, including
// the gap between bars.
func (l Layout) SlotWidth() float64 {
	if len(l.Bars) == 0 {
		return l.Plot.W
	}
	return l.Plot.W / float64(len(l.Bars))
}

// Build computes the full chart geometry. The chart must already be
// validated and the config normalized; Build reports only feasibility
// errors (canvas too small for the margins and at least one category
// slot). It fails fast rather than emit negative-size geometry.
func Build(c *chart.Chart, cfg chart.Config) (Layout, error) {
	m := cfg.Margins
	plot := Rect{
		X: m.Left,
		Y: m.Top,
		W: cfg.Width - m.Left - m.Right,
		H: cfg.Height - m.Top - m.Bottom,
	}

	nCats := len(c.Categories)
	if plot.W <= 0 || plot.H <= 0 || plot.W/float64(max(nCats, 1)) < minSlotWidth {
		return Layout{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"canvas %gx%g with margins (t=%g r=%g b=%g l=%g) leaves a %.1fx%.1f plot area, too small for %d categories",
			cfg.Width, cfg.Height, m.Top, m.Right, m.Bottom, m.Left, plot.W, plot.H, nCats)
	}

	scale := ComputeScale(c.MaxTotal(), cfg.TickTarget)

	l := Layout{
		FrameWidth:  cfg.Width,
		FrameHeight: cfg.Height,
		Plot:        plot,
		Scale:       scale,
		Bars:        buildBars(c, plot, scale, cfg.BarGapRatio),
		Ticks:       buildTicks(plot, scale),
		Legend:      buildLegend(c.LegendKeys(), plot),
	}
	return l, nil
}

// buildBars places one bar per category, evenly spaced, with segments
// stacked bottom-up in the order the category gives them. Heights map
// values linearly onto the plot height; zero values produce zero-height
// rects so the numeric-to-pixel mapping stays exact.
func buildBars(c *chart.Chart, plot Rect, scale AxisScale, gapRatio float64) []Bar {
	slot := plot.W / float64(len(c.Categories))
	barWidth := slot * (1 - gapRatio)
	baseline := plot.Y + plot.H

	bars := make([]Bar, len(c.Categories))
	for i, cat := range c.Categories {
		x := plot.X + float64(i)*slot + (slot-barWidth)/2
		bar := Bar{
			Label:    cat.Label,
			X:        x,
			Width:    barWidth,
			Total:    cat.Total(),
			Segments: make([]SegmentBox, len(cat.Segments)),
		}

		var cum float64
		for j, s := range cat.Segments {
			h := s.Value / scale.Max * plot.H
			bar.Segments[j] = SegmentBox{
				Key:   s.Name,
				Value: s.Value,
				Rect:  Rect{X: x, Y: baseline - cum - h, W: barWidth, H: h},
			}
			cum += h
		}
		bars[i] = bar
	}
	return bars
}

// buildTicks places a tick at every step multiple from 0 to the scale max.
func buildTicks(plot Rect, scale AxisScale) []Tick {
	values := scale.Ticks()
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{
			Value: v,
			Y:     plot.Y + plot.H - v/scale.Max*plot.H,
		}
	}
	return ticks
}

// buildLegend stacks one swatch per legend key in the right margin at a
// fixed pitch, top-aligned with the plot. Fixed pitch guarantees entries
// never overlap.
func buildLegend(keys []string, plot Rect) []LegendEntry {
	x := plot.X + plot.W + legendPad
	entries := make([]LegendEntry, len(keys))
	for i, k := range keys {
		entries[i] = LegendEntry{
			Key: k,
			Swatch: Rect{
				X: x,
				Y: plot.Y + float64(i)*(legendSwatchSize+legendRowGap),
				W: legendSwatchSize,
				H: legendSwatchSize,
			},
		}
	}
	return entries
}
