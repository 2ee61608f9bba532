package model

import "time"

// StepKind distinguishes the two assignment step flavours
type StepKind string

const (
	StepOnCall       StepKind = "oncall"
	StepGeneralShift StepKind = "general_shift"
)

// FairnessMode selects how the candidate selector computes priority keys
type FairnessMode string

const (
	// FairnessCount prefers members with the fewest prior assignments of
	// the target slot category
	FairnessCount FairnessMode = "count"
	// FairnessScore prefers members with the lowest cumulative weighted
	// score across the active score rules
	FairnessScore FairnessMode = "score"
)

// CapScope selects which assignments count against MaxAssignments
type CapScope string

const (
	// CapScopeRun counts only assignments made in the current run
	CapScopeRun CapScope = "run"
	// CapScopeMonthly counts pre-existing assignments in the window as well
	CapScopeMonthly CapScope = "monthly"
)

// MemberFilter selects members by month-resolved attributes. Nil fields
// match everything.
type MemberFilter struct {
	Team        *Team
	MinLevel    *OnCallLevel
	Skill       *Skill
	Positions   []Position
}

// Matches reports whether the member satisfies every set field
func (f *MemberFilter) Matches(m *Member) bool {
	if f.Team != nil && m.Team != *f.Team {
		return false
	}
	if f.MinLevel != nil && m.OnCallLevel < *f.MinLevel {
		return false
	}
	if f.Skill != nil && !m.Skills.Has(*f.Skill) {
		return false
	}
	if len(f.Positions) > 0 {
		found := false
		for _, p := range f.Positions {
			if m.Position == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MemberRule selects the target members for a run: an explicit id list, or
// an attribute filter, or (both empty) every member in the snapshot.
type MemberRule struct {
	IDs    []string
	Filter *MemberFilter
}

// DateRule selects the target dates for a run. Precedence: explicit dates,
// then an rrule expression, then the weekday/holiday filter, then the full
// period.
type DateRule struct {
	Dates []string

	// RRule is an RFC 5545 recurrence expression expanded within the window
	RRule string

	Weekdays     []time.Weekday
	HolidaysOnly bool
	SkipHolidays bool
}

// ScoreRule contributes weighted points in score-mode fairness. A rule
// matches a date when the date's weekday/holiday/pre-holiday status
// satisfies the filter; explicit excludes take precedence over includes.
type ScoreRule struct {
	Points      int
	SlotTypeIDs []string

	Weekdays           []time.Weekday
	IncludeHolidays    bool
	IncludePreHolidays bool
	ExcludeHolidays    bool
	ExcludePreHolidays bool
}

// DayOffset names which day an exclusion filter inspects relative to the
// target date
type DayOffset int

const (
	OffsetPrevDay DayOffset = -1
	OffsetSameDay DayOffset = 0
	OffsetNextDay DayOffset = 1
)

// DateExclusion blocks a member when the inspected day carries any of the
// configured shift types, schedule types, or vacation periods.
type DateExclusion struct {
	Offset          DayOffset
	ShiftTypeIDs    []string
	ScheduleTypeIDs []string
	VacationPeriods []VacationPeriod
}

// LocationExclusion blocks a member when their effective work location for
// the given half day resolves to one of the excluded location ids.
type LocationExclusion struct {
	Offset      DayOffset
	Period      VacationPeriod // VacationAM or VacationPM
	LocationIDs []string
}

// SkipRule skips an entire date (not a single member) when any member
// matching the condition already holds one of the shift types on that date.
type SkipRule struct {
	Team         *Team
	MinLevel     *OnCallLevel
	ShiftTypeIDs []string
}

// RunConfig is the immutable configuration of a single assignment run
type RunConfig struct {
	Kind StepKind

	SlotTypeID     string
	RestSlotTypeID string // on-call only: the paired post-duty rest slot

	// OnCallGroupIDs is the set of slot types checked by the rest-period
	// window. Empty means just SlotTypeID.
	OnCallGroupIDs []string

	Members MemberRule
	Dates   DateRule

	DateExclusions     []DateExclusion
	LocationExclusions []LocationExclusion
	SkipRules          []SkipRule

	// RequireOnCallClearance makes a general-shift run also apply the
	// on-call availability checks (rest window and adjacent-day flags)
	RequireOnCallClearance bool

	Fairness   FairnessMode
	ScoreRules []ScoreRule

	MaxAssignments *int
	CapScope       CapScope

	TrialCount int
}

// OnCallGroup returns the effective rest-period exclusion group
func (c *RunConfig) OnCallGroup() []string {
	if len(c.OnCallGroupIDs) > 0 {
		return c.OnCallGroupIDs
	}
	return []string{c.SlotTypeID}
}

// Clone returns a copy with an optionally overridden slot type and cap.
// Pipeline steps use this to apply per-step overrides without mutating the
// stored preset.
func (c *RunConfig) Clone() *RunConfig {
	clone := *c
	clone.OnCallGroupIDs = append([]string(nil), c.OnCallGroupIDs...)
	clone.Members.IDs = append([]string(nil), c.Members.IDs...)
	clone.Dates.Dates = append([]string(nil), c.Dates.Dates...)
	clone.Dates.Weekdays = append([]time.Weekday(nil), c.Dates.Weekdays...)
	clone.DateExclusions = append([]DateExclusion(nil), c.DateExclusions...)
	clone.LocationExclusions = append([]LocationExclusion(nil), c.LocationExclusions...)
	clone.SkipRules = append([]SkipRule(nil), c.SkipRules...)
	clone.ScoreRules = append([]ScoreRule(nil), c.ScoreRules...)
	if c.MaxAssignments != nil {
		max := *c.MaxAssignments
		clone.MaxAssignments = &max
	}
	return &clone
}

// Preset is a named, reusable engine configuration stored by the
// persistence collaborator
type Preset struct {
	ID     string
	Name   string
	Config RunConfig
}
