package chart

import (
	"github.com/stackplot/stackplot/pkg/errors"
)

// Default rendering configuration. These are the only defaults in the
// system; there is no process-wide mutable state.
const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultTickTarget = 6
	DefaultGapRatio   = 0.25
	DefaultFontFamily = "Helvetica,Arial,sans-serif"
	DefaultFontSize   = 12.0
)

// Default margins leave room for the title (top), tick labels and axis
// title (left), category labels (bottom), and the legend column (right).
var DefaultMargins = Margins{Top: 48, Right: 160, Bottom: 64, Left: 64}

// Margins reserves space around the plot area, in pixels.
type Margins struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

// Config is the immutable per-render configuration handed to the layout
// engine alongside the chart. Zero values are replaced by defaults via
// Normalize; the engine itself never mutates a Config.
type Config struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	Margins Margins `toml:"margins"`

	// TickTarget is the desired number of value-axis ticks. The computed
	// tick count may differ slightly because steps snap to nice numbers.
	TickTarget int `toml:"tick_target"`

	// BarGapRatio is the fraction of each category slot left empty as
	// spacing between bars, in [0, 1).
	BarGapRatio float64 `toml:"bar_gap_ratio"`

	FontFamily string  `toml:"font_family"`
	FontSize   float64 `toml:"font_size"`

	// Palette overrides generated colors per segment name (hex strings).
	// With AutoFill false, a palette missing any legend key is an error;
	// with AutoFill true, missing keys fall back to generated colors.
	Palette  map[string]string `toml:"palette"`
	AutoFill bool              `toml:"auto_fill"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Margins:     DefaultMargins,
		TickTarget:  DefaultTickTarget,
		BarGapRatio: DefaultGapRatio,
		FontFamily:  DefaultFontFamily,
		FontSize:    DefaultFontSize,
	}
}

// Normalize fills zero-valued fields with defaults and returns the result.
// Margins are taken as-is when any side is set, so an explicit zero margin
// on one side is honored.
func (c Config) Normalize() Config {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Margins == (Margins{}) {
		c.Margins = DefaultMargins
	}
	if c.TickTarget == 0 {
		c.TickTarget = DefaultTickTarget
	}
	if c.BarGapRatio == 0 {
		c.BarGapRatio = DefaultGapRatio
	}
	if c.FontFamily == "" {
		c.FontFamily = DefaultFontFamily
	}
	if c.FontSize == 0 {
		c.FontSize = DefaultFontSize
	}
	return c
}

// Validate checks configuration ranges. It does not check feasibility
// against a particular chart; that is the layout engine's job.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"canvas dimensions must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.BarGapRatio < 0 || c.BarGapRatio >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"bar gap ratio must be in [0, 1), got %g", c.BarGapRatio)
	}
	if c.TickTarget < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"tick target must be at least 1, got %d", c.TickTarget)
	}
	if m := c.Margins; m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margins must be non-negative")
	}
	return nil
}
