package bar

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/stackplot/stackplot/pkg/chart"
)

// Approximate glyph metrics. The SVG format defers real font metrics to
// the renderer, so text extents are estimated from character count at a
// fixed width ratio.
const (
	fontCharWidth   = 0.55 // average glyph width as a fraction of font size
	titleSizeFactor = 1.5
	labelPad        = 6.0
	tickLabelPad    = 8.0
	categoryAngle   = -45.0 // rotation applied to overlong category labels
)

// Anchor is an SVG text-anchor value.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// TextBox is one positioned text element: anchor point, rotation around
// that point (degrees, 0 = horizontal), and font size.
type TextBox struct {
	Text     string
	X, Y     float64
	FontSize float64
	Rotation float64
	Anchor   Anchor
}

// Labels holds every text element of a chart, grouped by role.
type Labels struct {
	Title          *TextBox
	AxisTitle      *TextBox
	TickLabels     []TextBox
	CategoryLabels []TextBox
	LegendLabels   []TextBox
}

// EstimateWidth returns the approximate rendered width of text at the
// given font size.
func EstimateWidth(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * fontCharWidth
}

// PlaceLabels positions all text for a computed layout. Category labels
// that overflow their slot rotate before they truncate; tick labels sit
// left of the plot; legend labels follow their swatches at fixed pitch,
// so no two can overlap.
func PlaceLabels(l Layout, c *chart.Chart, cfg chart.Config) Labels {
	labels := Labels{
		TickLabels:     tickLabels(l, cfg),
		CategoryLabels: categoryLabels(l, cfg),
		LegendLabels:   legendLabels(l, cfg),
	}

	if c.Title != "" {
		labels.Title = &TextBox{
			Text:     c.Title,
			X:        l.FrameWidth / 2,
			Y:        l.Plot.Y / 2,
			FontSize: cfg.FontSize * titleSizeFactor,
			Anchor:   AnchorMiddle,
		}
	}
	if c.ValueAxisTitle != "" {
		labels.AxisTitle = &TextBox{
			Text:     c.ValueAxisTitle,
			X:        cfg.FontSize * titleSizeFactor,
			Y:        l.Plot.Y + l.Plot.H/2,
			FontSize: cfg.FontSize,
			Rotation: -90,
			Anchor:   AnchorMiddle,
		}
	}
	return labels
}

// FormatTickValue renders a tick value with no trailing floating noise.
// Nice-number steps keep values exactly representable, so the shortest
// decimal form is always round.
func FormatTickValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func tickLabels(l Layout, cfg chart.Config) []TextBox {
	boxes := make([]TextBox, len(l.Ticks))
	for i, t := range l.Ticks {
		boxes[i] = TextBox{
			Text:     FormatTickValue(t.Value),
			X:        l.Plot.X - tickLabelPad,
			Y:        t.Y + cfg.FontSize*0.35, // optical vertical centering
			FontSize: cfg.FontSize,
			Anchor:   AnchorEnd,
		}
	}
	return boxes
}

// categoryLabels centers each label under its slot. A label wider than
// its slot rotates to categoryAngle; if the rotated run still exceeds the
// bottom margin's diagonal, the text truncates with a ".." suffix.
func categoryLabels(l Layout, cfg chart.Config) []TextBox {
	slot := l.SlotWidth()
	y := l.Plot.Y + l.Plot.H + cfg.FontSize + labelPad

	boxes := make([]TextBox, len(l.Bars))
	for i, b := range l.Bars {
		center := b.X + b.Width/2
		box := TextBox{
			Text:     b.Label,
			X:        center,
			Y:        y,
			FontSize: cfg.FontSize,
			Anchor:   AnchorMiddle,
		}

		if EstimateWidth(b.Label, cfg.FontSize) > slot {
			box.Rotation = categoryAngle
			box.Anchor = AnchorEnd

			bottom := l.FrameHeight - (l.Plot.Y + l.Plot.H)
			avail := (bottom - labelPad) / math.Sin(-categoryAngle*math.Pi/180)
			box.Text = TruncateLabel(b.Label, avail, cfg.FontSize)
		}
		boxes[i] = box
	}
	return boxes
}

func legendLabels(l Layout, cfg chart.Config) []TextBox {
	avail := l.FrameWidth - (l.Plot.X + l.Plot.W + legendPad + legendSwatchSize + labelPad)

	boxes := make([]TextBox, len(l.Legend))
	for i, e := range l.Legend {
		boxes[i] = TextBox{
			Text:     TruncateLabel(e.Key, avail, cfg.FontSize),
			X:        e.Swatch.X + e.Swatch.W + labelPad,
			Y:        e.Swatch.Y + e.Swatch.H*0.8,
			FontSize: cfg.FontSize,
			Anchor:   AnchorStart,
		}
	}
	return boxes
}

// TruncateLabel shortens text to fit the available width at the given
// font size, appending ".." when anything is cut. At least three
// characters survive so labels stay recognizable.
func TruncateLabel(text string, availWidth, fontSize float64) string {
	maxChars := int(availWidth / (fontSize * fontCharWidth))
	if maxChars < 3 {
		maxChars = 3
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars-2]) + ".."
}
