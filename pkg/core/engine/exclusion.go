package engine

import (
	"time"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// passesExclusions evaluates the general-shift exclusion filters for the
// member on the target date
func (e *Engine) passesExclusions(date string, m *model.Member, led *Ledger, cfg *model.RunConfig) bool {
	for _, ex := range cfg.DateExclusions {
		target, err := AddDays(date, int(ex.Offset))
		if err != nil {
			return false
		}
		if e.dateExclusionHits(target, m, led, ex) {
			return false
		}
	}

	for _, ex := range cfg.LocationExclusions {
		target, err := AddDays(date, int(ex.Offset))
		if err != nil {
			return false
		}
		loc := e.EffectiveLocation(m, target, ex.Period)
		for _, id := range ex.LocationIDs {
			if loc == id {
				return false
			}
		}
	}

	return true
}

// dateExclusionHits reports whether the inspected day carries any of the
// configured shift types, schedule types, or vacation periods
func (e *Engine) dateExclusionHits(date string, m *model.Member, led *Ledger, ex model.DateExclusion) bool {
	if len(ex.ShiftTypeIDs) > 0 {
		if m.HasShiftOn(date, ex.ShiftTypeIDs) || led.HasSlotOn(m.ID, date, ex.ShiftTypeIDs) {
			return true
		}
	}

	for _, entry := range m.Schedules[date] {
		for _, id := range ex.ScheduleTypeIDs {
			if entry.SlotTypeID == id {
				return true
			}
		}
	}

	if vac, ok := m.Vacations[date]; ok {
		for _, period := range ex.VacationPeriods {
			if vac.Period == period {
				return true
			}
		}
	}

	return false
}

// EffectiveLocation resolves the member's work location for a half day via
// the fixed precedence: explicit per-entry location, slot-type default,
// vacation-type default, research-day default, date-level override, global
// weekday/holiday default.
func (e *Engine) EffectiveLocation(m *model.Member, date string, period model.VacationPeriod) string {
	coverage := model.Coverage{AM: period == model.VacationAM, PM: period == model.VacationPM}
	if period == model.VacationFullDay {
		coverage = model.Coverage{AM: true, PM: true}
	}

	var slotDefault string
	for _, entry := range m.EntriesOn(date) {
		st := e.snap.SlotType(entry.SlotTypeID)
		if st == nil || !st.Coverage.Overlaps(coverage) {
			continue
		}
		if entry.LocationID != "" {
			return entry.LocationID
		}
		if slotDefault == "" && st.DefaultLocationID != "" {
			slotDefault = st.DefaultLocationID
		}
	}
	if slotDefault != "" {
		return slotDefault
	}

	if vac, ok := m.Vacations[date]; ok && vac.Period.Blocks(coverage) && vac.LocationID != "" {
		return vac.LocationID
	}

	if day, err := DayFor(date, e.snap.Holidays); err == nil {
		if blockedByResearchDay(m, day) && e.snap.Defaults.ResearchDayLocationID != "" {
			return e.snap.Defaults.ResearchDayLocationID
		}

		if loc, ok := m.Locations[date]; ok && loc != "" {
			return loc
		}

		if day.Holiday || day.Weekday == time.Sunday {
			return e.snap.Defaults.HolidayLocationID
		}
		return e.snap.Defaults.WeekdayLocationID
	}

	if loc, ok := m.Locations[date]; ok {
		return loc
	}
	return ""
}

// skipDate evaluates the whole-day skip rules: the date is skipped when any
// member matching a rule's condition already holds one of its shift types.
func (e *Engine) skipDate(date string, led *Ledger, cfg *model.RunConfig) bool {
	for _, rule := range cfg.SkipRules {
		if len(rule.ShiftTypeIDs) == 0 {
			continue
		}
		for _, m := range e.snap.Members {
			if rule.Team != nil && m.Team != *rule.Team {
				continue
			}
			if rule.MinLevel != nil && m.OnCallLevel < *rule.MinLevel {
				continue
			}
			if m.HasShiftOn(date, rule.ShiftTypeIDs) || led.HasSlotOn(m.ID, date, rule.ShiftTypeIDs) {
				return true
			}
		}
	}
	return false
}
