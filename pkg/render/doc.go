// Package render provides chart rendering for stackplot.
//
// # Overview
//
// This package contains the rendering pipeline that transforms chart data
// into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Stacked bar chart layout and emission (in the [bar] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Raster conversion is
// deliberately delegated to that tool; nothing in this module rasterizes.
//
//	doc := sink.BuildSVG(layout, labels, colors)
//	pdf, err := render.ToPDF(doc.Bytes())
//	png, err := render.ToPNG(doc.Bytes(), 2.0)  // 2x scale
//
// # Stacked Bar Charts
//
// The [bar] subpackage computes axis scales, colors, geometry, and label
// placement; its [bar/sink] subpackage serializes results to SVG, JSON,
// PDF, and PNG.
//
// [bar]: github.com/stackplot/stackplot/pkg/render/bar
// [bar/sink]: github.com/stackplot/stackplot/pkg/render/bar/sink
package render
