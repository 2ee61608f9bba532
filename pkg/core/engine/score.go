package engine

import "github.com/meitohealth/duty-roster/pkg/core/model"

// ruleMatchesDay decides whether a score rule applies to a calendar day.
// Explicit exclude flags take precedence over include flags; a rule with no
// weekday list and no include flags matches every day it does not exclude.
func ruleMatchesDay(rule model.ScoreRule, day model.Day) bool {
	if rule.ExcludeHolidays && day.Holiday {
		return false
	}
	if rule.ExcludePreHolidays && day.PreHoliday {
		return false
	}

	if len(rule.Weekdays) == 0 && !rule.IncludeHolidays && !rule.IncludePreHolidays {
		return true
	}

	for _, wd := range rule.Weekdays {
		if day.Weekday == wd {
			return true
		}
	}
	if rule.IncludeHolidays && day.Holiday {
		return true
	}
	if rule.IncludePreHolidays && day.PreHoliday {
		return true
	}
	return false
}

// ruleTargets reports whether the rule covers the slot type. An empty
// target list covers every slot type.
func ruleTargets(rule model.ScoreRule, slotTypeID string) bool {
	if len(rule.SlotTypeIDs) == 0 {
		return true
	}
	for _, id := range rule.SlotTypeIDs {
		if id == slotTypeID {
			return true
		}
	}
	return false
}

// memberScore computes the member's cumulative weighted score: for each
// active rule, the count of matching occurrences (persisted shifts plus
// provisional assignments) times the rule's points.
func (e *Engine) memberScore(m *model.Member, led *Ledger, rules []model.ScoreRule) int {
	total := 0
	for _, rule := range rules {
		occurrences := 0

		for date, entries := range m.Shifts {
			day, err := DayFor(date, e.snap.Holidays)
			if err != nil || !ruleMatchesDay(rule, day) {
				continue
			}
			for _, entry := range entries {
				if ruleTargets(rule, entry.SlotTypeID) {
					occurrences++
				}
			}
		}

		for date, assignments := range led.byMember[m.ID] {
			day, err := DayFor(date, e.snap.Holidays)
			if err != nil || !ruleMatchesDay(rule, day) {
				continue
			}
			for _, a := range assignments {
				if ruleTargets(rule, a.SlotTypeID) {
					occurrences++
				}
			}
		}

		total += occurrences * rule.Points
	}
	return total
}
