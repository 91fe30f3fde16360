package analysis

import "math"

// roundHalfUp rounds to the nearest integer with ties going toward +Inf.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func round1(x float64) float64 {
	return roundHalfUp(x*10) / 10
}

func round2(x float64) float64 {
	return roundHalfUp(x*100) / 100
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
