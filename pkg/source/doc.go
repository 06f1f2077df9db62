// Package source decodes chart documents into the chart data model.
//
// Two formats are supported, chosen by file extension:
//
//   - JSON (.json): categories and segments as ordered arrays
//   - TOML (.toml): the same structure in TOML's array-of-tables form
//
// Both forms keep segments as arrays rather than maps so that stacking
// order survives decoding. Decoded charts are validated before they are
// returned; the layout engine never sees a malformed chart.
//
// # JSON example
//
//	{
//	  "title": "Quarterly revenue",
//	  "categories": [
//	    {"label": "Q1", "segments": [{"name": "hardware", "value": 10}]}
//	  ]
//	}
//
// # TOML example
//
//	title = "Quarterly revenue"
//
//	[[categories]]
//	label = "Q1"
//	segments = [{ name = "hardware", value = 10 }]
package source
