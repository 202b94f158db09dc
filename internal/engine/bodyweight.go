package engine

// AddBodyweight folds a bodyweight contribution into an external load for
// bodyweight-assisted exercises: total = external + bodyweight * factor,
// where factor is the fraction of bodyweight the movement loads (0..1).
func AddBodyweight(externalWeight, bodyweight, factor float64) float64 {
	return Round2(externalWeight + bodyweight*factor)
}

// RemoveBodyweight factors the bodyweight contribution back out of a total
// load, recovering the external weight to prescribe.
func RemoveBodyweight(totalWeight, bodyweight, factor float64) float64 {
	return Round2(totalWeight - bodyweight*factor)
}
