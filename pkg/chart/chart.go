// Package chart defines the in-memory data model for stacked bar charts.
//
// A Chart is an ordered sequence of categories, each holding an ordered
// sequence of named numeric segments. Categories render as bars along the
// X axis; segments stack bottom-up within each bar. Segment names form the
// legend key set: the same name always maps to the same color and style
// class, no matter which categories it appears in.
//
// Charts are plain values. They are constructed by a decoder (see
// pkg/source), validated once, handed to the layout engine, and discarded.
// Nothing in this package persists between renders.
package chart

import (
	"math"

	"github.com/stackplot/stackplot/pkg/errors"
)

// Segment is one named numeric value within a category, rendered as one
// stacked rectangle. Values must be non-negative.
type Segment struct {
	Name  string  `json:"name" toml:"name"`
	Value float64 `json:"value" toml:"value"`
}

// Category is one labeled group of stacked segments, rendered as one bar.
// Segment order is stacking order (first segment sits on the baseline).
type Category struct {
	Label    string    `json:"label" toml:"label"`
	Segments []Segment `json:"segments" toml:"segments"`
}

// Total returns the stacked sum of all segment values in the category.
func (c Category) Total() float64 {
	var sum float64
	for _, s := range c.Segments {
		sum += s.Value
	}
	return sum
}

// Value returns the value of the named segment, or 0 if the category
// omits that key. An omitted key still reserves its legend color.
func (c Category) Value(name string) float64 {
	for _, s := range c.Segments {
		if s.Name == name {
			return s.Value
		}
	}
	return 0
}

// Chart is the full dataset for one render: ordered categories plus titles.
// Canvas dimensions and styling live in Config, not here.
type Chart struct {
	Title          string     `json:"title,omitempty" toml:"title"`
	ValueAxisTitle string     `json:"value_axis_title,omitempty" toml:"value_axis_title"`
	Categories     []Category `json:"categories" toml:"categories"`
}

// LegendKeys returns the distinct segment names across all categories in
// first-seen order. This ordering is the stable identity used for color
// assignment and style class derivation, so two renders of the same chart
// always agree on colors.
func (c *Chart) LegendKeys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, cat := range c.Categories {
		for _, s := range cat.Segments {
			if _, ok := seen[s.Name]; !ok {
				seen[s.Name] = struct{}{}
				keys = append(keys, s.Name)
			}
		}
	}
	return keys
}

// MaxTotal returns the largest stacked category total, or 0 for an empty
// chart. This is the raw input to the axis scale calculation.
func (c *Chart) MaxTotal() float64 {
	var max float64
	for _, cat := range c.Categories {
		if t := cat.Total(); t > max {
			max = t
		}
	}
	return max
}

// Validate checks the chart for structural problems the layout engine
// assumes are absent: at least one category, non-empty labels and segment
// names, and finite non-negative values. Callers must validate before handing a
// chart to the engine.
func (c *Chart) Validate() error {
	if len(c.Categories) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "chart has no categories")
	}
	for i, cat := range c.Categories {
		if cat.Label == "" {
			return errors.New(errors.ErrCodeInvalidInput, "category %d has an empty label", i)
		}
		for j, s := range cat.Segments {
			if s.Name == "" {
				return errors.New(errors.ErrCodeInvalidInput,
					"category %q segment %d has an empty name", cat.Label, j)
			}
			// TOML accepts nan/inf literals, so non-finite values reach
			// the decoder; they must not reach the layout engine.
			if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
				return errors.New(errors.ErrCodeInvalidInput,
					"category %q segment %q has non-finite value %g", cat.Label, s.Name, s.Value)
			}
			if s.Value < 0 {
				return errors.New(errors.ErrCodeInvalidInput,
					"category %q segment %q has negative value %g", cat.Label, s.Name, s.Value)
			}
		}
	}
	return nil
}
