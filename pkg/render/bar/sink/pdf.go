package sink

import (
	"github.com/stackplot/stackplot/pkg/render"
	"github.com/stackplot/stackplot/pkg/render/bar"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG builder.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the layout as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(l bar.Layout, labels bar.Labels, colors map[string]string, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg := BuildSVG(l, labels, colors, r.svgOpts...).Bytes()
	return render.ToPDF(svg)
}
