package engine

// EstimateOneRepMax estimates a one-rep max from a completed set: the (reps,
// RPE) pair is converted to effective reps first, then run through the chosen
// formula. The result is rounded to 2 decimals. Pure and stateless.
func EstimateOneRepMax(weight, reps float64, rpe RPE, formula Formula) (float64, error) {
	if weight <= 0 {
		return 0, invalidArgf("weight must be positive, got %v", weight)
	}
	if reps <= 0 {
		return 0, invalidArgf("reps must be positive, got %v", reps)
	}
	if !rpe.ValidActual() {
		return 0, invalidArgf("RPE %v outside the 6-10 band and not a sentinel", float64(rpe))
	}
	est, ok := formula.Estimate(weight, EffectiveReps(reps, rpe))
	if !ok {
		return 0, invalidArgf("unknown formula %q", formula)
	}
	return Round2(est), nil
}

// TargetWeight computes the prescribed working weight for a target reps/RPE
// pair given a known one-rep max. The same effective-reps transform applies to
// the target pair before the formula inverse runs. When the effective target
// resolves to a single maximal rep the 1RM is returned directly; every inverse
// agrees with that at reps=1, this is just the documented fast path.
func TargetWeight(oneRepMax, targetReps float64, targetRPE RPE, formula Formula) (float64, error) {
	if oneRepMax <= 0 {
		return 0, invalidArgf("one-rep max must be positive, got %v", oneRepMax)
	}
	if targetReps <= 0 {
		return 0, invalidArgf("target reps must be positive, got %v", targetReps)
	}
	if !targetRPE.ValidTarget() {
		return 0, invalidArgf("target RPE %v outside the 6-10 band", float64(targetRPE))
	}
	effective := EffectiveReps(targetReps, targetRPE)
	if effective == 1 {
		return Round2(oneRepMax), nil
	}
	w, ok := formula.WeightForReps(oneRepMax, effective)
	if !ok {
		return 0, invalidArgf("unknown formula %q", formula)
	}
	return Round2(w), nil
}
