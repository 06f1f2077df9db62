package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/stackplot/stackplot/pkg/render/bar"
)

const (
	defaultFontFamily = "Helvetica,Arial,sans-serif"
	axisColor         = "#333"
	gridColor         = "#ddd"
	tickLength        = 5.0
)

// SVGOption configures SVG document construction.
type SVGOption func(*svgBuilder)

type svgBuilder struct {
	fontFamily string
	background string
	gridlines  bool
}

// WithFontFamily sets the font-family attribute on the document root.
func WithFontFamily(family string) SVGOption {
	return func(b *svgBuilder) { b.fontFamily = family }
}

// WithBackground adds an opaque background rectangle in the given color.
func WithBackground(hex string) SVGOption {
	return func(b *svgBuilder) { b.background = hex }
}

// WithoutGridlines omits the horizontal gridlines behind the bars.
func WithoutGridlines() SVGOption {
	return func(b *svgBuilder) { b.gridlines = false }
}

// BuildSVG assembles the vector document tree for a computed layout.
// It performs no I/O; callers serialize the result with [Document.Bytes].
//
// Structure: a <style> block mapping segment classes to fills, optional
// background and gridlines, the axis group, one <rect> per segment
// (classed by segment name), all text labels, and a legend group of
// swatch+text pairs. Identical inputs always produce an identical tree.
func BuildSVG(l bar.Layout, labels bar.Labels, colors map[string]string, opts ...SVGOption) *Document {
	b := svgBuilder{fontFamily: defaultFontFamily, gridlines: true}
	for _, opt := range opts {
		opt(&b)
	}

	keys := make([]string, len(l.Legend))
	for i, e := range l.Legend {
		keys[i] = e.Key
	}
	classes := SegmentClasses(keys)

	doc := NewDocument(l.FrameWidth, l.FrameHeight)
	root := doc.Root()
	root.Attr("font-family", b.fontFamily)

	if t := labels.Title; t != nil {
		root.Child("title").SetText(t.Text)
	}

	root.Child("style").SetText(styleSheet(keys, classes, colors))

	if b.background != "" {
		root.Child("rect").
			Attr("class", "background").
			Attr("width", "100%").
			Attr("height", "100%").
			Attr("fill", b.background)
	}

	if b.gridlines {
		buildGridlines(root, l)
	}
	buildAxes(root, l)
	buildBars(root, l, classes)
	buildLabels(root, labels)
	buildLegend(root, l, labels, classes)

	return doc
}

// styleSheet emits one fill rule per legend key, in legend order.
func styleSheet(keys []string, classes, colors map[string]string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "    .%s { fill: %s; }\n", classes[k], colors[k])
	}
	sb.WriteString("    .axis { stroke: " + axisColor + "; stroke-width: 1; }\n")
	sb.WriteString("    .grid { stroke: " + gridColor + "; stroke-width: 1; }\n")
	sb.WriteString("  ")
	return sb.String()
}

func buildGridlines(root *Elem, l bar.Layout) {
	g := root.Child("g").Attr("class", "grid")
	for _, t := range l.Ticks {
		if t.Value == 0 {
			continue // baseline is drawn by the axis group
		}
		g.Child("line").
			AttrF("x1", "%.2f", l.Plot.X).
			AttrF("y1", "%.2f", t.Y).
			AttrF("x2", "%.2f", l.Plot.X+l.Plot.W).
			AttrF("y2", "%.2f", t.Y)
	}
}

func buildAxes(root *Elem, l bar.Layout) {
	g := root.Child("g").Attr("class", "axis")

	// Value axis with tick marks
	g.Child("line").
		AttrF("x1", "%.2f", l.Plot.X).
		AttrF("y1", "%.2f", l.Plot.Y).
		AttrF("x2", "%.2f", l.Plot.X).
		AttrF("y2", "%.2f", l.Plot.Y+l.Plot.H)
	for _, t := range l.Ticks {
		g.Child("line").
			AttrF("x1", "%.2f", l.Plot.X-tickLength).
			AttrF("y1", "%.2f", t.Y).
			AttrF("x2", "%.2f", l.Plot.X).
			AttrF("y2", "%.2f", t.Y)
	}

	// Baseline
	g.Child("line").
		AttrF("x1", "%.2f", l.Plot.X).
		AttrF("y1", "%.2f", l.Plot.Y+l.Plot.H).
		AttrF("x2", "%.2f", l.Plot.X+l.Plot.W).
		AttrF("y2", "%.2f", l.Plot.Y+l.Plot.H)
}

func buildBars(root *Elem, l bar.Layout, classes map[string]string) {
	g := root.Child("g").Attr("class", "bars")
	for _, b := range l.Bars {
		barG := g.Child("g").Attr("data-category", b.Label)
		for _, s := range b.Segments {
			barG.Child("rect").
				Attr("class", classes[s.Key]).
				AttrF("x", "%.2f", s.Rect.X).
				AttrF("y", "%.2f", s.Rect.Y).
				AttrF("width", "%.2f", s.Rect.W).
				AttrF("height", "%.2f", s.Rect.H)
		}
	}
}

func buildLabels(root *Elem, labels bar.Labels) {
	g := root.Child("g").Attr("class", "labels")

	if t := labels.Title; t != nil {
		addText(g, *t).Attr("class", "chart-title").Attr("font-weight", "bold")
	}
	if t := labels.AxisTitle; t != nil {
		addText(g, *t).Attr("class", "axis-title")
	}
	for _, t := range labels.TickLabels {
		addText(g, t).Attr("class", "tick-label")
	}
	for _, t := range labels.CategoryLabels {
		addText(g, t).Attr("class", "category-label")
	}
}

func buildLegend(root *Elem, l bar.Layout, labels bar.Labels, classes map[string]string) {
	if len(l.Legend) == 0 {
		return
	}
	g := root.Child("g").Attr("class", "legend")
	for i, e := range l.Legend {
		entry := g.Child("g").Attr("class", "legend-entry")
		entry.Child("rect").
			Attr("class", classes[e.Key]).
			AttrF("x", "%.2f", e.Swatch.X).
			AttrF("y", "%.2f", e.Swatch.Y).
			AttrF("width", "%.2f", e.Swatch.W).
			AttrF("height", "%.2f", e.Swatch.H)
		if i < len(labels.LegendLabels) {
			addText(entry, labels.LegendLabels[i])
		}
	}
}

// addText converts a positioned TextBox into a <text> element.
func addText(parent *Elem, t bar.TextBox) *Elem {
	e := parent.Child("text").
		AttrF("x", "%.2f", t.X).
		AttrF("y", "%.2f", t.Y).
		AttrF("font-size", "%.1f", t.FontSize).
		Attr("text-anchor", string(t.Anchor))
	if t.Rotation != 0 {
		e.AttrF("transform", "rotate(%.0f %.2f %.2f)", t.Rotation, t.X, t.Y)
	}
	e.SetText(t.Text)
	return e
}

// SegmentClasses derives a CSS class per legend key. The derivation is a
// pure function of the ordered key list: sanitize the name, and bump a
// numeric suffix until the result is unused. Collisions are checked
// against final emitted classes, so a key whose sanitized form already
// ends in a suffix cannot alias an earlier suffixed one. The same ordered
// key list always yields the same classes across renders.
func SegmentClasses(keys []string) map[string]string {
	classes := make(map[string]string, len(keys))
	used := make(map[string]bool, len(keys))
	for i, k := range keys {
		name := sanitizeClass(k)
		if name == "seg-" {
			name = fmt.Sprintf("seg-%d", i+1)
		}
		final := name
		for n := 2; used[final]; n++ {
			final = fmt.Sprintf("%s-%d", name, n)
		}
		used[final] = true
		classes[k] = final
	}
	return classes
}

// sanitizeClass lowercases the key and maps runs of non-alphanumerics to
// single hyphens.
func sanitizeClass(key string) string {
	var sb strings.Builder
	sb.WriteString("seg-")
	lastHyphen := false
	for _, r := range strings.ToLower(key) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			sb.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// =============================================================================
// Document tree
// =============================================================================

// Attr is one serialized attribute. Attributes keep insertion order so
// output is deterministic.
type Attr struct {
	Key, Value string
}

// Elem is one node of the vector document tree.
type Elem struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Elem
}

// Attr appends an attribute and returns the element for chaining.
func (e *Elem) Attr(key, value string) *Elem {
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// AttrF appends a formatted attribute.
func (e *Elem) AttrF(key, format string, args ...any) *Elem {
	return e.Attr(key, fmt.Sprintf(format, args...))
}

// Child creates, appends, and returns a new child element.
func (e *Elem) Child(tag string) *Elem {
	c := &Elem{Tag: tag}
	e.Children = append(e.Children, c)
	return c
}

// SetText sets the element's character data.
func (e *Elem) SetText(text string) *Elem {
	e.Text = text
	return e
}

// Document is a complete SVG document tree, ready for serialization.
type Document struct {
	root *Elem
}

// NewDocument creates an empty SVG document with the given canvas size.
func NewDocument(width, height float64) *Document {
	root := &Elem{Tag: "svg"}
	root.Attr("xmlns", "http://www.w3.org/2000/svg").
		AttrF("viewBox", "0 0 %.1f %.1f", width, height).
		AttrF("width", "%.0f", width).
		AttrF("height", "%.0f", height)
	return &Document{root: root}
}

// Root returns the document's <svg> element.
func (d *Document) Root() *Elem { return d.root }

// Bytes serializes the document tree to well-formed SVG markup.
// Serialization is deterministic: identical trees yield identical bytes.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	writeElem(&buf, d.root, 0)
	return buf.Bytes()
}

func writeElem(buf *bytes.Buffer, e *Elem, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	for _, a := range e.Attrs {
		fmt.Fprintf(buf, ` %s="%s"`, a.Key, escapeAttr(a.Value))
	}

	if e.Text == "" && len(e.Children) == 0 {
		buf.WriteString("/>\n")
		return
	}

	buf.WriteByte('>')
	if e.Text != "" {
		buf.WriteString(escapeText(e.Text))
	}
	if len(e.Children) > 0 {
		buf.WriteByte('\n')
		for _, c := range e.Children {
			writeElem(buf, c, depth+1)
		}
		buf.WriteString(indent)
	}
	fmt.Fprintf(buf, "</%s>\n", e.Tag)
}

var (
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
func escapeText(s string) string { return textEscaper.Replace(s) }
