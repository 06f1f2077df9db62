package bar

import "math"

// degenerateMax is the data maximum substituted when all category totals
// are zero, so an empty chart still gets a drawable axis.
const degenerateMax = 1.0

// AxisScale is the computed round-number range and tick step for the
// value axis. Min is always 0 for non-negative data; Max is the smallest
// nice multiple of Step that covers the data maximum.
type AxisScale struct {
	Min  float64
	Max  float64
	Step float64

	// Degenerate is set when the data maximum was zero and the scale
	// fell back to the documented default. Callers may surface this as
	// a warning; it is not an error.
	Degenerate bool
}

// TickCount returns the number of tick intervals between Min and Max.
func (s AxisScale) TickCount() int {
	return int(math.Round((s.Max - s.Min) / s.Step))
}

// Ticks enumerates tick values from Min to Max inclusive. Values are
// computed as Step multiples rather than accumulated, then snapped to 12
// decimal places so multiples like 3×0.1 label as "0.3" instead of
// carrying binary noise.
func (s AxisScale) Ticks() []float64 {
	n := s.TickCount()
	ticks := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		v := s.Min + float64(i)*s.Step
		ticks[i] = math.Round(v*1e12) / 1e12
	}
	return ticks
}

// ComputeScale derives a nice axis scale from the maximum stacked category
// total. The raw step maxTotal/tickTarget is rounded up to the nearest
// value of the form {1, 2, 2.5, 5}×10^k, and the maximum is rounded up to
// a whole number of steps, so tick labels are always round base-10 values
// and every bar fits under Max.
//
// A non-positive maxTotal yields the degenerate fallback scale (the nice
// scale for 1.0) with Degenerate set.
func ComputeScale(maxTotal float64, tickTarget int) AxisScale {
	if tickTarget < 1 {
		tickTarget = 1
	}

	degenerate := maxTotal <= 0 || math.IsNaN(maxTotal)
	if degenerate {
		maxTotal = degenerateMax
	}

	step := niceCeil(maxTotal / float64(tickTarget))
	max := math.Ceil(maxTotal/step-fuzz) * step

	return AxisScale{Max: max, Step: step, Degenerate: degenerate}
}

// fuzz absorbs floating noise so an exact multiple of step does not gain
// an extra tick interval.
const fuzz = 1e-9

// niceFractions are the allowed step mantissas, ascending.
var niceFractions = []float64{1, 2, 2.5, 5, 10}

// niceCeil rounds x up to the nearest {1, 2, 2.5, 5}×10^k.
func niceCeil(x float64) float64 {
	exp := math.Floor(math.Log10(x))
	pow := math.Pow(10, exp)
	frac := x / pow

	for _, f := range niceFractions {
		if frac <= f+fuzz {
			return f * pow
		}
	}
	return 10 * pow
}
