// Package pkg provides the core libraries for stackplot chart rendering.
//
// # Overview
//
// Stackplot turns tabular chart documents into deterministic stacked bar
// chart SVGs. The pkg directory is organized into five main areas:
//
//  1. [chart] - Data model and render configuration
//  2. [source] - Chart document decoding (JSON, TOML)
//  3. [render] - Layout, labeling, color assignment, and output sinks
//  4. [pipeline] - Orchestration (decode → layout → render) with caching
//  5. [cache] - Artifact caching backends (file, Redis, null)
//
// # Architecture
//
// The typical data flow through stackplot:
//
//	Chart document (JSON/TOML)
//	         ↓
//	    [source] package (decode + validate)
//	         ↓
//	    [render/bar] package (scale, geometry, colors, labels)
//	         ↓
//	    [render/bar/sink] package (SVG, PNG, PDF, JSON)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Decode a chart and render it to SVG:
//
//	import (
//	    "github.com/stackplot/stackplot/pkg/chart"
//	    "github.com/stackplot/stackplot/pkg/render/bar"
//	    "github.com/stackplot/stackplot/pkg/render/bar/sink"
//	    "github.com/stackplot/stackplot/pkg/source"
//	)
//
//	// 1. Decode the document
//	c, _ := source.ImportFile("revenue.json")
//
//	// 2. Compute the layout
//	cfg := chart.Config{}.Normalize()
//	l, _ := bar.Build(c, cfg)
//
//	// 3. Place text and assign colors
//	labels := bar.PlaceLabels(l, c, cfg)
//	colors, _ := bar.Colors(c.LegendKeys(), cfg.Palette, cfg.AutoFill)
//
//	// 4. Render to SVG
//	svg := sink.BuildSVG(l, labels, colors).Bytes()
//
// # Main Packages
//
// [chart] - The chart data model (categories, stacked segments, legend
// keys) and the per-render configuration with its defaults.
//
// [source] - Decoders for JSON and TOML chart documents, dispatching on
// file extension with stdin support.
//
// [render/bar] - The layout engine: nice-number axis scales, bottom-up
// segment stacking, hue-wheel color assignment, and label placement with
// rotate-before-truncate overflow handling. Pure and deterministic.
//
// [render/bar/sink] - Output sinks. SVG via an ordered-attribute element
// tree (identical layouts serialize to identical bytes), JSON layout
// export, and PNG/PDF conversion through rsvg-convert.
//
// [pipeline] - The decode → layout → render pipeline shared by the CLI
// and the preview server, with content-hash artifact caching.
//
// [cache] - Byte-oriented caches: FileCache for the CLI, RedisCache for
// the preview server, and a null backend to disable caching.
//
// [errors] - Structured error codes shared across the CLI and server.
//
// [observability] - Optional hooks for pipeline and cache events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/render/bar/...  # Specific package
//
// [chart]: https://pkg.go.dev/github.com/stackplot/stackplot/pkg/chart
// [source]: https://pkg.go.dev/github.com/stackplot/stackplot/pkg/source
// [render]: https://pkg.go.dev/github.com/stackplot/stackplot/pkg/render
// [render/bar]: https://pkg.go.dev/github.com/stackplot/stackplot/pkg/render/bar
// [render/bar/sink]: https://pkg.go.dev/github.com/stackplot/stackplot/pkg/render/bar/sink
// [pipeline]: https://pkg.go.dev/github.com/stackplot/stackplot/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/stackplot/stackplot/pkg/cache
// [errors]: https://pkg.go.dev/github.com/stackplot/stackplot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/stackplot/stackplot/pkg/observability
package pkg
