package bar

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/stackplot/stackplot/pkg/errors"
)

// Generated colors sit on an evenly divided hue wheel at fixed saturation
// and lightness. Even division maximizes the minimum pairwise hue distance
// (360/N degrees) for any a-priori-unknown key count.
const (
	paletteSaturation = 0.60
	paletteLightness  = 0.55
)

// Colors assigns a hex color to every legend key.
//
// Keys must be in first-seen order (see chart.LegendKeys); the assignment
// is a pure function of (key order, palette, autoFill), so repeated renders
// of the same chart always agree.
//
// A caller-supplied palette is used verbatim for the keys it names. Keys
// missing from the palette are an error unless autoFill is set, in which
// case they take their generated wheel color. A nil or empty palette
// generates all colors.
func Colors(keys []string, palette map[string]string, autoFill bool) (map[string]string, error) {
	if len(palette) > 0 && !autoFill {
		var missing []string
		for _, k := range keys {
			if _, ok := palette[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return nil, errors.New(errors.ErrCodePaletteTooSmall,
				"palette covers %d of %d segment names (missing %q); set auto_fill to generate the rest",
				len(keys)-len(missing), len(keys), missing)
		}
	}

	assigned := make(map[string]string, len(keys))
	for i, k := range keys {
		if hex, ok := palette[k]; ok {
			assigned[k] = hex
			continue
		}
		assigned[k] = wheelColor(i, len(keys))
	}
	return assigned, nil
}

// wheelColor returns the hex color for slot i of an n-slot hue wheel.
func wheelColor(i, n int) string {
	hue := float64(i) * 360.0 / float64(n)
	return colorful.Hsl(hue, paletteSaturation, paletteLightness).Clamped().Hex()
}
