package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// Offsets of the rest-period window around an on-call duty: no second duty
// in the exclusion group within two days either side.
var restWindowOffsets = []int{-2, -1, 1, 2}

// IsEligible decides whether the member may be assigned the slot type on
// the date, given the provisional assignments made so far. It is a pure
// function of its inputs and safe to call repeatedly during search.
func (e *Engine) IsEligible(date string, m *model.Member, slot *model.SlotType, led *Ledger, cfg *model.RunConfig) bool {
	day, err := DayFor(date, e.snap.Holidays)
	if err != nil {
		return false
	}

	if !e.passesGeneralChecks(day, m, slot, led) {
		return false
	}

	switch cfg.Kind {
	case model.StepOnCall:
		if m.OnCallLevel == model.OnCallNone {
			return false
		}
		if !e.onCallClear(date, m, led, cfg.OnCallGroup()) {
			return false
		}
		return e.restDayEligible(date, m, led)
	case model.StepGeneralShift:
		if cfg.RequireOnCallClearance && !e.onCallClear(date, m, led, cfg.OnCallGroup()) {
			return false
		}
		return e.passesExclusions(date, m, led, cfg)
	}
	return true
}

// eligibleSafe guards a single eligibility evaluation against panics from
// malformed records. A bad record makes the pair ineligible instead of
// losing the whole trial.
func (e *Engine) eligibleSafe(date string, m *model.Member, slot *model.SlotType, led *Ledger, cfg *model.RunConfig) (eligible bool) {
	defer func() {
		if r := recover(); r != nil {
			eligible = false
			e.logger.Warn("eligibility evaluation panicked",
				zap.String("date", date),
				zap.String("member_id", m.ID),
				zap.Any("panic", r))
		}
	}()
	return e.IsEligible(date, m, slot, led, cfg)
}

// passesGeneralChecks applies the exclusions common to every slot type
func (e *Engine) passesGeneralChecks(day model.Day, m *model.Member, slot *model.SlotType, led *Ledger) bool {
	if m.Seconded {
		return false
	}
	if m.OnLeave(day.Date) {
		return false
	}
	if blockedByResearchDay(m, day) {
		return false
	}

	// One slot per member per date within a run, even across
	// non-overlapping periods
	if led.HasAny(m.ID, day.Date) {
		return false
	}

	if slot.Coverage.Overlaps(e.occupiedCoverage(m, day.Date, led)) {
		return false
	}

	if vac, ok := m.Vacations[day.Date]; ok && vac.Period.Blocks(slot.Coverage) {
		return false
	}

	return true
}

// blockedByResearchDay reports whether the member's weekly research day
// blocks the date. Holidays and Sundays lift the block.
func blockedByResearchDay(m *model.Member, day model.Day) bool {
	if m.ResearchDay == nil {
		return false
	}
	if day.Holiday || day.Weekday == time.Sunday {
		return false
	}
	return day.Weekday == *m.ResearchDay
}

// occupiedCoverage unions the time-of-day coverage of every persisted entry
// and provisional assignment the member holds on the date
func (e *Engine) occupiedCoverage(m *model.Member, date string, led *Ledger) model.Coverage {
	var occupied model.Coverage
	for _, entry := range m.EntriesOn(date) {
		if st := e.snap.SlotType(entry.SlotTypeID); st != nil {
			occupied = occupied.Union(st.Coverage)
		}
	}
	for _, a := range led.OnDate(m.ID, date) {
		if st := e.snap.SlotType(a.SlotTypeID); st != nil {
			occupied = occupied.Union(st.Coverage)
		}
	}
	return occupied
}

// onCallClear applies the rest-period window and the adjacent-day
// compatibility flags around the date
func (e *Engine) onCallClear(date string, m *model.Member, led *Ledger, group []string) bool {
	for _, offset := range restWindowOffsets {
		other, err := AddDays(date, offset)
		if err != nil {
			return false
		}
		if m.HasShiftOn(other, group) || led.HasSlotOn(m.ID, other, group) {
			return false
		}
	}

	prev, err := AddDays(date, -1)
	if err != nil {
		return false
	}
	next, err := AddDays(date, 1)
	if err != nil {
		return false
	}

	// A false flag on any surrounding entry vetoes on-call duty here
	if !e.entriesAllow(m, led, prev, func(st *model.SlotType) bool { return st.NextDayNightOK }) {
		return false
	}
	if !e.entriesAllow(m, led, date, func(st *model.SlotType) bool { return st.SameDayNightOK }) {
		return false
	}
	if !e.entriesAllow(m, led, next, func(st *model.SlotType) bool { return st.PrevDayNightOK }) {
		return false
	}

	return true
}

// entriesAllow checks a night-shift compatibility flag across every entry
// (persisted and provisional) the member holds on the date
func (e *Engine) entriesAllow(m *model.Member, led *Ledger, date string, allow func(*model.SlotType) bool) bool {
	for _, entry := range m.EntriesOn(date) {
		if st := e.snap.SlotType(entry.SlotTypeID); st != nil && !allow(st) {
			return false
		}
	}
	for _, a := range led.OnDate(m.ID, date) {
		if st := e.snap.SlotType(a.SlotTypeID); st != nil && !allow(st) {
			return false
		}
	}
	return true
}

// restDayEligible checks that the day after an on-call duty can take the
// paired post-duty rest assignment
func (e *Engine) restDayEligible(date string, m *model.Member, led *Ledger) bool {
	next, err := AddDays(date, 1)
	if err != nil {
		return false
	}
	nextDay, err := DayFor(next, e.snap.Holidays)
	if err != nil {
		return false
	}

	if blockedByResearchDay(m, nextDay) {
		return false
	}
	if _, ok := m.Vacations[next]; ok {
		return false
	}
	if m.OnLeave(next) {
		return false
	}
	if led.HasAny(m.ID, next) {
		return false
	}
	return true
}
