package engine

import "math"

// Formula identifies a one-rep-max estimation formula.
type Formula string

const (
	FormulaEpley    Formula = "epley"
	FormulaBrzycki  Formula = "brzycki"
	FormulaLander   Formula = "lander"
	FormulaLombardi Formula = "lombardi"
	FormulaMayhew   Formula = "mayhew"
	FormulaOConner  Formula = "oconner"
	FormulaWathan   Formula = "wathan"
	// FormulaAverage averages the seven concrete estimates, each computed
	// independently from the same inputs.
	FormulaAverage Formula = "average"
)

// concreteFormulas are the seven named formulas, in the order the average
// composite iterates them.
var concreteFormulas = []Formula{
	FormulaEpley,
	FormulaBrzycki,
	FormulaLander,
	FormulaLombardi,
	FormulaMayhew,
	FormulaOConner,
	FormulaWathan,
}

// Formulas returns all supported formula names, composite included.
func Formulas() []Formula {
	out := make([]Formula, 0, len(concreteFormulas)+1)
	out = append(out, concreteFormulas...)
	return append(out, FormulaAverage)
}

// Valid reports whether f names a supported formula.
func (f Formula) Valid() bool {
	if f == FormulaAverage {
		return true
	}
	for _, cf := range concreteFormulas {
		if f == cf {
			return true
		}
	}
	return false
}

// brzyckiRepCap is where the Brzycki denominator (37 - reps) goes non-positive.
// At or beyond it both directions fall back to a linear extrapolation.
const brzyckiRepCap = 37

// Estimate maps (weight, effective reps) to an estimated one-rep max. Reps
// plausibility is the caller's problem: the RPE layer hands in effective reps
// and the calculator validates at its boundary. Unknown formulas return false.
func (f Formula) Estimate(weight, reps float64) (float64, bool) {
	switch f {
	case FormulaEpley:
		return weight * (1 + reps/30), true
	case FormulaBrzycki:
		if reps >= brzyckiRepCap {
			return weight * (1 + reps*0.025), true
		}
		return weight * 36 / (37 - reps), true
	case FormulaLander:
		return weight * 100 / (101.3 - 2.67123*reps), true
	case FormulaLombardi:
		return weight * math.Pow(reps, 0.1), true
	case FormulaMayhew:
		return weight * 100 / (52.2 + 41.9*math.Exp(-0.055*reps)), true
	case FormulaOConner:
		return weight * (1 + 0.025*reps), true
	case FormulaWathan:
		return weight * 100 / (48.8 + 53.8*math.Exp(-0.075*reps)), true
	case FormulaAverage:
		var sum float64
		for _, cf := range concreteFormulas {
			est, _ := cf.Estimate(weight, reps)
			sum += est
		}
		return sum / float64(len(concreteFormulas)), true
	}
	return 0, false
}

// WeightForReps is the algebraic inverse of Estimate: it maps (one-rep max,
// target effective reps) to the weight that would produce that 1RM estimate.
// Each inverse is derived analytically from its forward form. The average
// composite inverts each formula independently and averages the seven results,
// not the other way around.
func (f Formula) WeightForReps(oneRepMax, reps float64) (float64, bool) {
	switch f {
	case FormulaEpley:
		return oneRepMax / (1 + reps/30), true
	case FormulaBrzycki:
		if reps >= brzyckiRepCap {
			return oneRepMax / (1 + reps*0.025), true
		}
		return oneRepMax * (37 - reps) / 36, true
	case FormulaLander:
		return oneRepMax * (101.3 - 2.67123*reps) / 100, true
	case FormulaLombardi:
		return oneRepMax / math.Pow(reps, 0.1), true
	case FormulaMayhew:
		return oneRepMax * (52.2 + 41.9*math.Exp(-0.055*reps)) / 100, true
	case FormulaOConner:
		return oneRepMax / (1 + 0.025*reps), true
	case FormulaWathan:
		return oneRepMax * (48.8 + 53.8*math.Exp(-0.075*reps)) / 100, true
	case FormulaAverage:
		var sum float64
		for _, cf := range concreteFormulas {
			w, _ := cf.WeightForReps(oneRepMax, reps)
			sum += w
		}
		return sum / float64(len(concreteFormulas)), true
	}
	return 0, false
}
