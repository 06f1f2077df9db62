package sink

import (
	"encoding/json"
	"fmt"

	"github.com/stackplot/stackplot/pkg/render/bar"
)

// LayoutExport is the serializable mirror of a computed layout plus its
// color assignment, for the json output format.
type LayoutExport struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Plot   RectExport  `json:"plot"`
	Scale  ScaleExport `json:"scale"`

	Bars   []BarExport    `json:"bars"`
	Ticks  []TickExport   `json:"ticks"`
	Legend []LegendExport `json:"legend"`
}

type RectExport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type ScaleExport struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Step       float64 `json:"step"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

type BarExport struct {
	Label    string          `json:"label"`
	X        float64         `json:"x"`
	Width    float64         `json:"width"`
	Total    float64         `json:"total"`
	Segments []SegmentExport `json:"segments"`
}

type SegmentExport struct {
	Key   string     `json:"key"`
	Value float64    `json:"value"`
	Rect  RectExport `json:"rect"`
}

type TickExport struct {
	Value float64 `json:"value"`
	Y     float64 `json:"y"`
}

type LegendExport struct {
	Key    string     `json:"key"`
	Class  string     `json:"class"`
	Color  string     `json:"color"`
	Swatch RectExport `json:"swatch"`
}

// RenderJSON serializes a layout and its color assignment as indented JSON.
func RenderJSON(l bar.Layout, colors map[string]string) ([]byte, error) {
	keys := make([]string, len(l.Legend))
	for i, e := range l.Legend {
		keys[i] = e.Key
	}
	classes := SegmentClasses(keys)

	out := LayoutExport{
		Width:  l.FrameWidth,
		Height: l.FrameHeight,
		Plot:   exportRect(l.Plot),
		Scale: ScaleExport{
			Min:        l.Scale.Min,
			Max:        l.Scale.Max,
			Step:       l.Scale.Step,
			Degenerate: l.Scale.Degenerate,
		},
		Bars:   make([]BarExport, len(l.Bars)),
		Ticks:  make([]TickExport, len(l.Ticks)),
		Legend: make([]LegendExport, len(l.Legend)),
	}

	for i, b := range l.Bars {
		be := BarExport{
			Label:    b.Label,
			X:        b.X,
			Width:    b.Width,
			Total:    b.Total,
			Segments: make([]SegmentExport, len(b.Segments)),
		}
		for j, s := range b.Segments {
			be.Segments[j] = SegmentExport{Key: s.Key, Value: s.Value, Rect: exportRect(s.Rect)}
		}
		out.Bars[i] = be
	}
	for i, t := range l.Ticks {
		out.Ticks[i] = TickExport{Value: t.Value, Y: t.Y}
	}
	for i, e := range l.Legend {
		out.Legend[i] = LegendExport{
			Key:    e.Key,
			Class:  classes[e.Key],
			Color:  colors[e.Key],
			Swatch: exportRect(e.Swatch),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return append(data, '\n'), nil
}

func exportRect(r bar.Rect) RectExport {
	return RectExport{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
