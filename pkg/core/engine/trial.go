package engine

import (
	"sort"

	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// RunState is the mutable state of a single trial, threaded explicitly
// through each step of the assigner.
type RunState struct {
	// Remaining holds the not-yet-processed target dates
	Remaining []string
	// Counts is the per-member assignment counter, seeded from the
	// initial counts
	Counts map[string]int
	// Initial is the seed itself, kept so run-scoped caps can subtract it
	Initial map[string]int
	// Ledger holds the assignments made so far in this trial
	Ledger *Ledger
}

// TrialResult is the outcome of one complete pass over the date range
type TrialResult struct {
	Assignments     []model.Assignment
	Counts          map[string]int
	UnassignedDates []string
	SkippedDates    []string
}

// RunTrial drives one greedy pass: dates ordered most-constrained-first,
// each assigned to the selected candidate or recorded as unassignable.
func (e *Engine) RunTrial(members []*model.Member, dates []string, initial map[string]int, cfg *model.RunConfig, rng Rand) *TrialResult {
	slot := e.snap.SlotType(cfg.SlotTypeID)

	state := &RunState{
		Remaining: append([]string(nil), dates...),
		Counts:    make(map[string]int, len(members)),
		Initial:   make(map[string]int, len(initial)),
		Ledger:    NewLedger(),
	}
	for id, n := range initial {
		state.Counts[id] = n
		state.Initial[id] = n
	}

	result := &TrialResult{}

	for len(state.Remaining) > 0 {
		e.sortByScarcity(members, slot, state, cfg)

		date := state.Remaining[0]
		state.Remaining = state.Remaining[1:]

		// A date already covered, in the store or earlier in this same
		// trial, needs no assignment
		if e.dateCovered(date, state.Ledger, cfg) {
			result.SkippedDates = append(result.SkippedDates, date)
			continue
		}

		if e.skipDate(date, state.Ledger, cfg) {
			result.SkippedDates = append(result.SkippedDates, date)
			continue
		}

		var eligible []*model.Member
		for _, m := range members {
			if !e.withinCap(m, slot, state, cfg) {
				continue
			}
			if e.eligibleSafe(date, m, slot, state.Ledger, cfg) {
				eligible = append(eligible, m)
			}
		}

		if len(eligible) == 0 {
			result.UnassignedDates = append(result.UnassignedDates, date)
			continue
		}

		chosen := e.SelectCandidate(date, eligible, slot, state, cfg, rng)
		e.assign(date, chosen, slot, state, cfg)
	}

	result.Assignments = state.Ledger.All()
	result.Counts = state.Counts

	e.logger.Debug("trial finished",
		zap.Int("assigned", len(result.Assignments)),
		zap.Int("unassigned", len(result.UnassignedDates)),
		zap.Int("skipped", len(result.SkippedDates)))

	return result
}

// sortByScarcity reorders the remaining dates ascending by how many members
// are still eligible and within cap, so the most constrained date is
// handled first. Ties fall back to date order for determinism.
func (e *Engine) sortByScarcity(members []*model.Member, slot *model.SlotType, state *RunState, cfg *model.RunConfig) {
	options := make(map[string]int, len(state.Remaining))
	for _, date := range state.Remaining {
		count := 0
		for _, m := range members {
			if !e.withinCap(m, slot, state, cfg) {
				continue
			}
			if e.eligibleSafe(date, m, slot, state.Ledger, cfg) {
				count++
			}
		}
		options[date] = count
	}

	sort.SliceStable(state.Remaining, func(i, j int) bool {
		a, b := state.Remaining[i], state.Remaining[j]
		if options[a] != options[b] {
			return options[a] < options[b]
		}
		return a < b
	})
}

// dateCovered reports whether the target slot is already held on the date,
// either by a persisted shift or by an assignment from this same trial
func (e *Engine) dateCovered(date string, led *Ledger, cfg *model.RunConfig) bool {
	target := []string{cfg.SlotTypeID}
	for _, m := range e.snap.Members {
		if m.HasShiftOn(date, target) {
			return true
		}
	}
	return led.SlotAssigned(date, cfg.SlotTypeID)
}

// withinCap applies the configured per-member cap and the slot type's
// monthly occurrence cap. Run-scoped caps count only assignments made in
// this run; monthly-scoped caps include the seeded pre-existing counts.
func (e *Engine) withinCap(m *model.Member, slot *model.SlotType, state *RunState, cfg *model.RunConfig) bool {
	if cfg.MaxAssignments != nil {
		count := state.Counts[m.ID]
		if cfg.CapScope == model.CapScopeRun {
			count -= state.Initial[m.ID]
		}
		if count >= *cfg.MaxAssignments {
			return false
		}
	}

	if slot != nil && slot.MonthlyCap != nil && state.Counts[m.ID] >= *slot.MonthlyCap {
		return false
	}

	return true
}

// assign appends the assignment for the chosen member, pairing on-call duty
// with the next-day post-duty rest shift, and bumps the counter
func (e *Engine) assign(date string, m *model.Member, slot *model.SlotType, state *RunState, cfg *model.RunConfig) {
	kind := model.KindGeneralShift
	if cfg.Kind == model.StepOnCall {
		kind = model.KindOnCallPrimary
	}

	state.Ledger.Add(model.Assignment{
		Kind:       kind,
		Date:       date,
		MemberID:   m.ID,
		SlotTypeID: slot.ID,
		LocationID: slot.DefaultLocationID,
	})
	state.Counts[m.ID]++

	if cfg.Kind == model.StepOnCall && cfg.RestSlotTypeID != "" {
		next, err := AddDays(date, 1)
		if err != nil {
			return
		}
		var restLocation string
		if rest := e.snap.SlotType(cfg.RestSlotTypeID); rest != nil {
			restLocation = rest.DefaultLocationID
		}
		state.Ledger.Add(model.Assignment{
			Kind:       model.KindOnCallRest,
			Date:       next,
			MemberID:   m.ID,
			SlotTypeID: cfg.RestSlotTypeID,
			LocationID: restLocation,
		})
	}
}
