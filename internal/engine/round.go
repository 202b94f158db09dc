package engine

import "math"

// Round2 rounds to 2 decimal places. All weights the engine returns go
// through this; callers wanting plate-level precision use SnapDown after.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SnapDown snaps a weight down to the nearest multiple of the given equipment
// increment. An increment of zero or less returns the weight unchanged.
func SnapDown(weight, increment float64) float64 {
	if increment <= 0 {
		return weight
	}
	return Round2(math.Floor(weight/increment) * increment)
}
