package engine

// defaultSettings holds the stock configuration per strategy. Built once and
// never mutated; access only through DefaultSettings, which hands out copies.
var defaultSettings = map[ProgressionType]Settings{
	ProgressionRPEAutoreg: RPEAutoregSettings{
		TargetReps:         5,
		TargetRPE:          8,
		Tolerance:          0.5,
		IncrementOnSuccess: 2.5,
		Formula:            FormulaBrzycki,
	},
	ProgressionLinkedBackoff: LinkedBackoffSettings{
		OffsetPercent: -0.10,
	},
	ProgressionDouble: DoubleProgressionSettings{
		RepFloor:        8,
		RepCeiling:      12,
		WeightIncrement: 2.5,
	},
	ProgressionLinearFixed: LinearFixedSettings{
		TargetSets:     3,
		TargetReps:     5,
		FixedIncrement: 2.5,
	},
	ProgressionAMRAP: AMRAPSettings{
		MinReps:              5,
		IncrementPerBonusRep: 2.5,
		MaxIncrement:         10,
	},
}

// DefaultSettings returns the stock settings for a progression type. Payloads
// are plain value structs, so the returned copy is safe for the caller to
// modify without touching the shared table.
func DefaultSettings(t ProgressionType) (Settings, bool) {
	s, ok := defaultSettings[t]
	return s, ok
}
