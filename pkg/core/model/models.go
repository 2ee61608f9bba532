package model

import "time"

// DateFormat is the wire format for all roster dates
const DateFormat = "2006-01-02"

// Team identifies which of the two ward teams a member belongs to
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Position is the employment class of a member
type Position string

const (
	PositionStaff    Position = "staff"
	PositionResident Position = "resident"
	PositionFellow   Position = "fellow"
	PositionDirector Position = "director"
	PositionPartTime Position = "part_time"
)

// OnCallLevel is the ordered on-call capability of a member.
// OnCallNone is a sentinel meaning the member is never eligible for on-call duty.
type OnCallLevel int

const (
	OnCallNone OnCallLevel = iota
	OnCallTrainee
	OnCallJunior
	OnCallSenior
)

// Skill names a boolean capability flag on a member
type Skill string

const (
	SkillCardiac       Skill = "cardiac"
	SkillObstetric     Skill = "obstetric"
	SkillICU           Skill = "icu"
	SkillRemainingDuty Skill = "remaining_duty"
)

// Skills holds the capability flags of a member
type Skills struct {
	Cardiac       bool
	Obstetric     bool
	ICU           bool
	RemainingDuty bool
}

// Has reports whether the named skill flag is set
func (s Skills) Has(skill Skill) bool {
	switch skill {
	case SkillCardiac:
		return s.Cardiac
	case SkillObstetric:
		return s.Obstetric
	case SkillICU:
		return s.ICU
	case SkillRemainingDuty:
		return s.RemainingDuty
	}
	return false
}

// Coverage is the time-of-day footprint of a slot type
type Coverage struct {
	AM    bool
	PM    bool
	Night bool
}

// Empty returns true if the coverage has no flags set
func (c Coverage) Empty() bool {
	return !c.AM && !c.PM && !c.Night
}

// Overlaps returns true if the two coverages share any time of day
func (c Coverage) Overlaps(o Coverage) bool {
	return (c.AM && o.AM) || (c.PM && o.PM) || (c.Night && o.Night)
}

// Union merges two coverages
func (c Coverage) Union(o Coverage) Coverage {
	return Coverage{
		AM:    c.AM || o.AM,
		PM:    c.PM || o.PM,
		Night: c.Night || o.Night,
	}
}

// SlotType is a catalog entry for a shift type or schedule type.
// The three night-shift flags encode rest-period compatibility around
// on-call duty: a false flag vetoes on-call eligibility on the
// corresponding adjacent day.
type SlotType struct {
	ID       string
	Name     string
	Coverage Coverage

	// NextDayNightOK permits on-call duty on the day after this entry
	NextDayNightOK bool
	// SameDayNightOK permits on-call duty on the same day as this entry
	SameDayNightOK bool
	// PrevDayNightOK permits on-call duty on the day before this entry
	PrevDayNightOK bool

	// MonthlyCap is an optional per-member occurrence cap for this slot type
	MonthlyCap *int

	// DefaultLocationID is the work location implied by this slot type
	DefaultLocationID string
}

// VacationPeriod is the span of a vacation application on a single date
type VacationPeriod string

const (
	VacationFullDay VacationPeriod = "full"
	VacationAM      VacationPeriod = "am"
	VacationPM      VacationPeriod = "pm"
)

// Blocks reports whether a vacation of this period blocks a slot with the
// given coverage. A full-day vacation blocks everything; AM/PM vacations
// block slots covering the matching half day.
func (p VacationPeriod) Blocks(c Coverage) bool {
	switch p {
	case VacationFullDay:
		return !c.Empty()
	case VacationAM:
		return c.AM
	case VacationPM:
		return c.PM
	}
	return false
}

// Vacation is an approved vacation application for a member on a date.
// At most one exists per member per date.
type Vacation struct {
	Period     VacationPeriod
	TypeID     string
	LocationID string // default location implied by the vacation type
}

// Entry is a persisted schedule or shift entry for a member on a date
type Entry struct {
	SlotTypeID string
	LocationID string // explicit per-entry override, empty when unset
}

// DateRange is an inclusive range of dates
type DateRange struct {
	Start string
	End   string
}

// Contains reports whether the range contains the given date.
// Dates compare lexicographically in DateFormat.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// Member is a staff entity with its month-resolved attributes and the
// per-date data the engine reads. The engine treats members as an
// immutable snapshot; assignments are returned, never written back.
type Member struct {
	ID   string
	Name string

	Team        Team
	Position    Position
	OnCallLevel OnCallLevel
	Skills      Skills

	// ResearchDay is a weekday on which the member is categorically
	// unavailable, unless that day is a holiday or Sunday.
	ResearchDay *time.Weekday

	Leaves   []DateRange
	Seconded bool

	Schedules map[string][]Entry // date -> schedule entries
	Shifts    map[string][]Entry // date -> shift entries
	Vacations map[string]Vacation
	Locations map[string]string // date -> work location override
}

// OnLeave reports whether any leave-of-absence range contains the date
func (m *Member) OnLeave(date string) bool {
	for _, r := range m.Leaves {
		if r.Contains(date) {
			return true
		}
	}
	return false
}

// EntriesOn returns all persisted entries (schedules and shifts) for a date
func (m *Member) EntriesOn(date string) []Entry {
	entries := make([]Entry, 0, len(m.Schedules[date])+len(m.Shifts[date]))
	entries = append(entries, m.Schedules[date]...)
	entries = append(entries, m.Shifts[date]...)
	return entries
}

// HasShiftOn reports whether the member holds any of the given shift types
// on the date in persisted data
func (m *Member) HasShiftOn(date string, slotTypeIDs []string) bool {
	for _, entry := range m.Shifts[date] {
		for _, id := range slotTypeIDs {
			if entry.SlotTypeID == id {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the member. Pipeline steps use clones to
// overlay prior step results without touching the snapshot.
func (m *Member) Clone() *Member {
	clone := *m
	clone.Leaves = append([]DateRange(nil), m.Leaves...)
	clone.Schedules = cloneEntryMap(m.Schedules)
	clone.Shifts = cloneEntryMap(m.Shifts)
	clone.Vacations = make(map[string]Vacation, len(m.Vacations))
	for date, v := range m.Vacations {
		clone.Vacations[date] = v
	}
	clone.Locations = make(map[string]string, len(m.Locations))
	for date, loc := range m.Locations {
		clone.Locations[date] = loc
	}
	return &clone
}

func cloneEntryMap(src map[string][]Entry) map[string][]Entry {
	dst := make(map[string][]Entry, len(src))
	for date, entries := range src {
		dst[date] = append([]Entry(nil), entries...)
	}
	return dst
}

// Day is a derived calendar day. PreHoliday marks the calendar day
// immediately before a holiday.
type Day struct {
	Date       string
	Weekday    time.Weekday
	Holiday    bool
	PreHoliday bool
}

// LocationDefaults are the fallback work locations used when neither an
// entry, a slot type, a vacation type, nor a date-level override resolves
// a member's location.
type LocationDefaults struct {
	ResearchDayLocationID string
	WeekdayLocationID     string
	HolidayLocationID     string
}

// Snapshot is the immutable input the engine runs over, loaded from the
// persistence collaborator for the active editing window.
type Snapshot struct {
	Members       []*Member
	ShiftTypes    map[string]*SlotType
	ScheduleTypes map[string]*SlotType
	Holidays      map[string]string // date -> holiday name
	Presets       map[string]*Preset
	Defaults      LocationDefaults
}

// SlotType resolves a slot type id against both catalogs, shift types first
func (s *Snapshot) SlotType(id string) *SlotType {
	if st, ok := s.ShiftTypes[id]; ok {
		return st
	}
	return s.ScheduleTypes[id]
}

// Member returns the member with the given id, or nil
func (s *Snapshot) Member(id string) *Member {
	for _, m := range s.Members {
		if m.ID == id {
			return m
		}
	}
	return nil
}
