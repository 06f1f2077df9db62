// Package sink serializes computed chart layouts to output formats.
//
// # Formats
//
//   - SVG: the primary output; an in-memory element tree built by
//     [BuildSVG] and serialized by [Document.Bytes]
//   - JSON: the layout and color assignment as structured data, for
//     downstream tooling
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster output (requires rsvg-convert)
//
// PDF and PNG are produced by converting the SVG with the external
// rsvg-convert tool; see the parent render package.
//
// Every segment rectangle carries a style class derived from its segment
// name, so same-named segments share a class across bars and documents can
// be restyled externally with CSS.
package sink
