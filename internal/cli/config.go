package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/stackplot/stackplot/pkg/chart"
	"github.com/stackplot/stackplot/pkg/errors"
)

// loadConfig reads a TOML render configuration. An empty path returns a
// zero Config, which normalizes to the documented defaults.
func loadConfig(path string) (chart.Config, error) {
	var cfg chart.Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", path)
	}
	return cfg, nil
}

// applyFlagOverrides layers non-zero command-line flags over a file config.
// Flags win over the config file; unset flags leave the file value alone.
func applyFlagOverrides(cfg chart.Config, o *renderOpts) chart.Config {
	if o.width > 0 {
		cfg.Width = o.width
	}
	if o.height > 0 {
		cfg.Height = o.height
	}
	if o.ticks > 0 {
		cfg.TickTarget = o.ticks
	}
	if o.gap > 0 {
		cfg.BarGapRatio = o.gap
	}
	if o.fontFamily != "" {
		cfg.FontFamily = o.fontFamily
	}
	if o.autoFill {
		cfg.AutoFill = true
	}
	return cfg
}
