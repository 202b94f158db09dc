package engine

// RPE is a rate-of-perceived-exertion value on the 6-10 scale, tracked in
// half-point increments. Two sentinel values exist outside the scale: anything
// below 6 means "no perceptible effort", and 11 marks a failed rep. Both
// sentinels are only valid for actual (logged) RPE, never as a target.
type RPE float64

const (
	// RPEBelowSix marks a set logged with no perceptible effort.
	RPEBelowSix RPE = 5
	// RPEFail marks a set where the final rep failed.
	RPEFail RPE = 11
)

// ValidActual reports whether r is acceptable as a logged RPE: the 6-10 band
// or one of the sentinels.
func (r RPE) ValidActual() bool {
	return (r >= 6 && r <= 10) || r == RPEBelowSix || r == RPEFail
}

// ValidTarget reports whether r is acceptable as a target RPE. Targets are
// restricted to the 6-10 band; the sentinels make no sense as a prescription.
func (r RPE) ValidTarget() bool {
	return r >= 6 && r <= 10
}

// EffectiveReps converts a (reps, RPE) pair into an effective rep count by
// adding the reps in reserve the RPE implies: RPE 10 means the set was maximal,
// and every point below 10 adds one hypothetical rep of spare capacity. The
// RPEFail sentinel subtracts the failed rep.
func EffectiveReps(reps float64, rpe RPE) float64 {
	return reps + (10 - float64(rpe))
}
