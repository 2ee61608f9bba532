package engine

import "github.com/meitohealth/duty-roster/pkg/core/model"

// Ledger holds the provisional assignments of a run, indexed for the
// eligibility checks. Assignments are appended in the order they were made.
type Ledger struct {
	all      []model.Assignment
	byMember map[string]map[string][]model.Assignment
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{byMember: make(map[string]map[string][]model.Assignment)}
}

// Add records a provisional assignment
func (l *Ledger) Add(a model.Assignment) {
	l.all = append(l.all, a)
	dates, ok := l.byMember[a.MemberID]
	if !ok {
		dates = make(map[string][]model.Assignment)
		l.byMember[a.MemberID] = dates
	}
	dates[a.Date] = append(dates[a.Date], a)
}

// All returns the assignments in insertion order
func (l *Ledger) All() []model.Assignment {
	return l.all
}

// Len returns the number of provisional assignments
func (l *Ledger) Len() int {
	return len(l.all)
}

// OnDate returns the member's provisional assignments on a date
func (l *Ledger) OnDate(memberID, date string) []model.Assignment {
	return l.byMember[memberID][date]
}

// HasAny reports whether the member holds any provisional assignment on the
// date. This is deliberately stricter than the time-of-day overlap rule
// applied to persisted entries: one slot per member per date within a run.
func (l *Ledger) HasAny(memberID, date string) bool {
	return len(l.byMember[memberID][date]) > 0
}

// HasSlotOn reports whether the member holds a provisional assignment of
// any of the given slot types on the date
func (l *Ledger) HasSlotOn(memberID, date string, slotTypeIDs []string) bool {
	for _, a := range l.byMember[memberID][date] {
		for _, id := range slotTypeIDs {
			if a.SlotTypeID == id {
				return true
			}
		}
	}
	return false
}

// SlotAssigned reports whether any member holds a provisional assignment of
// the slot type on the date
func (l *Ledger) SlotAssigned(date, slotTypeID string) bool {
	for _, a := range l.all {
		if a.Date == date && a.SlotTypeID == slotTypeID {
			return true
		}
	}
	return false
}
