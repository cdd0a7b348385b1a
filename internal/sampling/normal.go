package sampling

import (
	"math"

	"github.com/shopspring/decimal"
)

// Normal draws one approximately normal value with the given mean and
// standard deviation using the cosine branch of the Box-Muller transform.
// Two uniforms are consumed per call and the sine value is discarded.
// No bounds are applied; callers clamp.
func Normal(src Source, mean, stdDev float64) float64 {
	// 1-u keeps u1 in (0, 1] so the log stays finite.
	u1 := 1 - src.Float64()
	u2 := 1 - src.Float64()
	z := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
	return mean + stdDev*z
}

// Round rounds x to the given number of decimal places. The exact binary
// value of x decides, so 0.000065 (stored just below the tie) rounds down.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloatWithExponent(x, -places).InexactFloat64()
}

// Clamp bounds x to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
