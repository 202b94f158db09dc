package engine

import (
	"fmt"
	"time"
)

// ProgressionType tags one of the five progression strategies. The set is
// closed: dispatch in CalculateNextState is exhaustive over these tags, and
// each tag pairs with exactly one Settings shape.
type ProgressionType string

const (
	ProgressionRPEAutoreg    ProgressionType = "rpe_autoreg"
	ProgressionLinkedBackoff ProgressionType = "linked_backoff"
	ProgressionDouble        ProgressionType = "double_progression"
	ProgressionLinearFixed   ProgressionType = "linear_fixed"
	ProgressionAMRAP         ProgressionType = "amrap_autoreg"
)

// ProgressionTypes returns all strategy tags in a stable order.
func ProgressionTypes() []ProgressionType {
	return []ProgressionType{
		ProgressionRPEAutoreg,
		ProgressionLinkedBackoff,
		ProgressionDouble,
		ProgressionLinearFixed,
		ProgressionAMRAP,
	}
}

// Settings is the closed set of per-strategy configuration payloads. The
// unexported method ties every payload shape to its tag, so a settings value
// shaped for one strategy can never be attached to another.
type Settings interface {
	progressionType() ProgressionType
}

// RPEAutoregSettings configures RPE autoregulation: hold the weight inside the
// tolerance band, add load when the set came in easier than the target, and
// flag for review — without reducing — when it came in harder.
type RPEAutoregSettings struct {
	TargetReps         int     `json:"target_reps"`
	TargetRPE          RPE     `json:"target_rpe"`
	Tolerance          float64 `json:"tolerance"`
	IncrementOnSuccess float64 `json:"increment_on_success"`
	Formula            Formula `json:"formula"`
}

// LinkedBackoffSettings configures a backoff entry whose weight is derived at
// use time from a parent entry's top set via BackoffWeight.
type LinkedBackoffSettings struct {
	OffsetPercent float64 `json:"offset_percent"`
}

// DoubleProgressionSettings configures double progression: climb reps inside
// [RepFloor, RepCeiling] one per session, then add weight and reset to floor.
type DoubleProgressionSettings struct {
	RepFloor        int     `json:"rep_floor"`
	RepCeiling      int     `json:"rep_ceiling"`
	WeightIncrement float64 `json:"weight_increment"`
}

// LinearFixedSettings configures linear progression over a fixed set/rep
// scheme: add weight once all target sets hit their target reps in a session.
type LinearFixedSettings struct {
	TargetSets     int     `json:"target_sets"`
	TargetReps     int     `json:"target_reps"`
	FixedIncrement float64 `json:"fixed_increment"`
}

// AMRAPSettings configures AMRAP autoregulation: load added per bonus rep over
// the minimum, capped per session.
type AMRAPSettings struct {
	MinReps              int     `json:"min_reps"`
	IncrementPerBonusRep float64 `json:"increment_per_bonus_rep"`
	MaxIncrement         float64 `json:"max_increment"`
}

func (RPEAutoregSettings) progressionType() ProgressionType    { return ProgressionRPEAutoreg }
func (LinkedBackoffSettings) progressionType() ProgressionType { return ProgressionLinkedBackoff }
func (DoubleProgressionSettings) progressionType() ProgressionType {
	return ProgressionDouble
}
func (LinearFixedSettings) progressionType() ProgressionType { return ProgressionLinearFixed }
func (AMRAPSettings) progressionType() ProgressionType       { return ProgressionAMRAP }

// Entry is the engine's view of one exercise configuration slot. It is plain
// immutable data: CalculateNextState never mutates it, it returns a NextState
// the caller folds into a fresh snapshot.
type Entry struct {
	// ID is opaque to the engine; it only has to match the logs' EntryID.
	ID string
	// Type is the progression tag. It must agree with the dynamic type of
	// Settings; NewEntry guarantees that, hand-built entries are checked at
	// dispatch.
	Type     ProgressionType
	Settings Settings
	// CurrentWeight is the prescribed working weight.
	CurrentWeight float64
	// CurrentReps is the prescribed rep count. Only rep-ranging strategies
	// (double progression) give it meaning.
	CurrentReps int
	// ParentID references the top-set entry for linked-backoff slots.
	ParentID string
}

// NewEntry builds an entry whose tag is derived from the settings payload, so
// tag and shape cannot disagree.
func NewEntry(id string, settings Settings, currentWeight float64, currentReps int) Entry {
	return Entry{
		ID:            id,
		Type:          settings.progressionType(),
		Settings:      settings,
		CurrentWeight: currentWeight,
		CurrentReps:   currentReps,
	}
}

// Log is one completed set. Append-only from the engine's point of view: it
// is read, never altered.
type Log struct {
	// EntryID references the entry the set fulfills. Must equal the entry's ID.
	EntryID     string
	CompletedAt time.Time
	Reps        int
	Weight      float64
	// RPE is nil when the lifter does not track RPE on this set.
	RPE *RPE
	// BonusReps, when set (including to 0), overrides the reps-over-minimum
	// derivation for AMRAP entries.
	BonusReps *int
	Completed bool
}

// NextState is the engine's verdict for the next session. NeedsReview marks
// soft conditions (missing RPE, under-minimum AMRAP, unknown tag); the caller
// surfaces it and must not auto-apply without acknowledgment. Weight and reps
// are always populated, unchanged when nothing progresses.
type NextState struct {
	NextWeight  float64 `json:"next_weight"`
	NextReps    int     `json:"next_reps"`
	NeedsReview bool    `json:"needs_review"`
	Message     string  `json:"message"`
}

// CalculateNextState advances an entry's prescription given the logs of the
// most recent session, ordered most-recent-first where order matters. Hard
// contract violations (log/entry mismatch, tag/settings mismatch, out-of-band
// targets) return an InvalidArgumentError; everything that is a normal
// training outcome comes back through the NextState itself.
func CalculateNextState(entry Entry, logs []Log) (NextState, error) {
	unchanged := NextState{NextWeight: entry.CurrentWeight, NextReps: entry.CurrentReps}

	for _, l := range logs {
		if l.EntryID != entry.ID {
			return NextState{}, invalidArgf("log references entry %q, progressing entry %q", l.EntryID, entry.ID)
		}
	}

	if len(logs) == 0 {
		unchanged.Message = "no logged sets for this session; prescription unchanged"
		return unchanged, nil
	}

	switch entry.Type {
	case ProgressionRPEAutoreg:
		s, err := settingsAs[RPEAutoregSettings](entry)
		if err != nil {
			return NextState{}, err
		}
		return nextRPEAutoreg(entry, s, logs[0])
	case ProgressionLinkedBackoff:
		if _, err := settingsAs[LinkedBackoffSettings](entry); err != nil {
			return NextState{}, err
		}
		// Backoff weight is derived from the parent's top set at use time;
		// the entry's own prescription never moves here.
		unchanged.Message = "backoff entry: weight follows the parent top set"
		return unchanged, nil
	case ProgressionDouble:
		s, err := settingsAs[DoubleProgressionSettings](entry)
		if err != nil {
			return NextState{}, err
		}
		return nextDoubleProgression(entry, s, logs[0]), nil
	case ProgressionLinearFixed:
		s, err := settingsAs[LinearFixedSettings](entry)
		if err != nil {
			return NextState{}, err
		}
		return nextLinearFixed(entry, s, logs), nil
	case ProgressionAMRAP:
		s, err := settingsAs[AMRAPSettings](entry)
		if err != nil {
			return NextState{}, err
		}
		return nextAMRAP(entry, s, logs[0]), nil
	}

	// Forward-incompatible data is reported, not fatal: a newer client may
	// have written a strategy this build does not know.
	unchanged.NeedsReview = true
	unchanged.Message = fmt.Sprintf("unrecognized progression type %q; review entry", entry.Type)
	return unchanged, nil
}

// settingsAs extracts the concrete settings payload, rejecting entries whose
// tag and payload shape disagree.
func settingsAs[S Settings](entry Entry) (S, error) {
	s, ok := entry.Settings.(S)
	if !ok {
		return s, invalidArgf("entry %q tagged %q carries settings of type %T", entry.ID, entry.Type, entry.Settings)
	}
	return s, nil
}

func nextRPEAutoreg(entry Entry, s RPEAutoregSettings, last Log) (NextState, error) {
	if !s.TargetRPE.ValidTarget() {
		return NextState{}, invalidArgf("target RPE %v outside the 6-10 band", float64(s.TargetRPE))
	}

	next := NextState{NextWeight: entry.CurrentWeight, NextReps: entry.CurrentReps}

	if last.RPE == nil {
		next.NeedsReview = true
		next.Message = "no RPE recorded on the last set; cannot autoregulate"
		return next, nil
	}

	diff := float64(*last.RPE) - float64(s.TargetRPE)
	switch {
	case diff < -s.Tolerance:
		next.NextWeight = Round2(entry.CurrentWeight + s.IncrementOnSuccess)
		next.Message = fmt.Sprintf("RPE %.1f under target %.1f; adding %.2f", float64(*last.RPE), float64(s.TargetRPE), s.IncrementOnSuccess)
	case diff > s.Tolerance:
		// Never auto-reduce off a single hard session; a one-off grind is
		// not evidence of lost fitness. Review is advisory only.
		next.NeedsReview = true
		next.Message = fmt.Sprintf("RPE %.1f over target %.1f; holding weight, review recommended", float64(*last.RPE), float64(s.TargetRPE))
	default:
		next.Message = "RPE within tolerance; holding weight"
	}
	return next, nil
}

func nextDoubleProgression(entry Entry, s DoubleProgressionSettings, last Log) NextState {
	next := NextState{NextWeight: entry.CurrentWeight, NextReps: entry.CurrentReps}

	switch {
	case last.Reps < entry.CurrentReps:
		next.Message = fmt.Sprintf("hit %d of %d reps; repeating the prescription", last.Reps, entry.CurrentReps)
	case entry.CurrentReps < s.RepCeiling:
		// Meeting or exceeding the prescription moves exactly one rep step,
		// never skipping ahead on an over-performance.
		next.NextReps = min(entry.CurrentReps+1, s.RepCeiling)
		next.Message = fmt.Sprintf("reps move %d -> %d", entry.CurrentReps, next.NextReps)
	default:
		next.NextWeight = Round2(entry.CurrentWeight + s.WeightIncrement)
		next.NextReps = s.RepFloor
		next.Message = fmt.Sprintf("ceiling %d reached; weight moves to %.2f, reps reset to %d", s.RepCeiling, next.NextWeight, s.RepFloor)
	}
	return next
}

func nextLinearFixed(entry Entry, s LinearFixedSettings, logs []Log) NextState {
	next := NextState{NextWeight: entry.CurrentWeight, NextReps: entry.CurrentReps}

	// Only sets from the most recent session count: filter to the calendar
	// date of the newest log before tallying.
	sessionDay := logs[0].CompletedAt
	successful := 0
	for _, l := range logs {
		if !sameDay(l.CompletedAt, sessionDay) {
			continue
		}
		if l.Completed && l.Reps >= s.TargetReps {
			successful++
		}
	}

	if successful >= s.TargetSets {
		next.NextWeight = Round2(entry.CurrentWeight + s.FixedIncrement)
		next.Message = fmt.Sprintf("%d/%d successful sets; weight moves to %.2f", successful, s.TargetSets, next.NextWeight)
	} else {
		next.Message = fmt.Sprintf("%d/%d successful sets; holding weight", successful, s.TargetSets)
	}
	return next
}

func nextAMRAP(entry Entry, s AMRAPSettings, last Log) NextState {
	next := NextState{NextWeight: entry.CurrentWeight, NextReps: entry.CurrentReps}

	if last.Reps < s.MinReps {
		next.NeedsReview = true
		next.Message = fmt.Sprintf("%d reps under the %d-rep minimum; holding weight, review recommended", last.Reps, s.MinReps)
		return next
	}

	bonus := last.Reps - s.MinReps
	if last.BonusReps != nil {
		// An explicit bonus count wins, including an explicit zero.
		bonus = *last.BonusReps
	}
	if bonus < 0 {
		bonus = 0
	}

	increment := float64(bonus) * s.IncrementPerBonusRep
	if increment > s.MaxIncrement {
		increment = s.MaxIncrement
	}
	next.NextWeight = Round2(entry.CurrentWeight + increment)
	next.Message = fmt.Sprintf("%d bonus reps; weight moves to %.2f", bonus, next.NextWeight)
	return next
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
