// Package bar computes the layout of a stacked bar chart.
//
// The engine is a pure function from a validated [chart.Chart] plus a
// [chart.Config] to geometry: it derives a nice-number axis scale, assigns
// colors to segment names, computes pixel coordinates for every bar,
// segment, tick, and legend entry, and places text labels without overlap.
// Serialization of the result lives in the [sink] subpackage.
//
// The pipeline runs in a fixed order:
//
//	scale := bar.ComputeScale(c.MaxTotal(), cfg.TickTarget)
//	layout, err := bar.Build(c, cfg)          // embeds the scale
//	labels := bar.PlaceLabels(layout, c, cfg)
//	colors, err := bar.Colors(c.LegendKeys(), cfg.Palette, cfg.AutoFill)
//	doc := sink.BuildSVG(layout, labels, colors, ...)
//
// Every function here is deterministic and touches no I/O, no logging, and
// no shared state; concurrent renders need no coordination.
//
// [sink]: github.com/stackplot/stackplot/pkg/render/bar/sink
package bar
