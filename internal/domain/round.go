package domain

import "math"

// RoundHalfUp rounds to the nearest integer. Halves round toward positive
// infinity, so 12.5 becomes 13 and -0.5 becomes 0.
func RoundHalfUp(v float64) int {
	return int(roundHalfUp(v))
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
