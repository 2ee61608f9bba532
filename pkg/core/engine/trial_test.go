package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

func TestRunTrial_AssignsEveryFeasibleDate(t *testing.T) {
	members := []*model.Member{testMember("m1"), testMember("m2"), testMember("m3")}
	e := New(testSnapshot(members...), nil)
	cfg := generalConfig("day")

	dates := []string{"2024-06-10", "2024-06-11", "2024-06-12"}
	result := e.RunTrial(members, dates, nil, cfg, NewRand(1))

	require.Len(t, result.Assignments, 3)
	assert.Empty(t, result.UnassignedDates)

	seen := map[string]bool{}
	for _, a := range result.Assignments {
		assert.Equal(t, model.KindGeneralShift, a.Kind)
		assert.Equal(t, "day", a.SlotTypeID)
		assert.False(t, seen[a.Date], "date assigned twice")
		seen[a.Date] = true
	}
}

func TestRunTrial_CapLimitsAssignments(t *testing.T) {
	// One member, three dates, cap of one: exactly one assignment and the
	// other two dates reported as unassignable
	m := testMember("m1")
	e := New(testSnapshot(m), nil)

	cfg := generalConfig("day")
	cfg.MaxAssignments = intPtr(1)
	cfg.CapScope = model.CapScopeRun

	dates := []string{"2024-06-10", "2024-06-11", "2024-06-12"}
	result := e.RunTrial([]*model.Member{m}, dates, nil, cfg, NewRand(1))

	assert.Len(t, result.Assignments, 1)
	assert.Len(t, result.UnassignedDates, 2)

	// Every target date is accounted for exactly once
	covered := map[string]bool{}
	for _, a := range result.Assignments {
		covered[a.Date] = true
	}
	for _, d := range result.UnassignedDates {
		covered[d] = true
	}
	assert.Len(t, covered, 3)
}

func TestRunTrial_RunScopedCapIgnoresSeededCounts(t *testing.T) {
	m := testMember("m1")
	e := New(testSnapshot(m), nil)

	cfg := generalConfig("day")
	cfg.MaxAssignments = intPtr(1)
	cfg.CapScope = model.CapScopeRun

	result := e.RunTrial([]*model.Member{m}, []string{"2024-06-10"}, map[string]int{"m1": 5}, cfg, NewRand(1))
	assert.Len(t, result.Assignments, 1)
}

func TestRunTrial_MonthlyScopedCapCountsSeededCounts(t *testing.T) {
	m := testMember("m1")
	e := New(testSnapshot(m), nil)

	cfg := generalConfig("day")
	cfg.MaxAssignments = intPtr(1)
	cfg.CapScope = model.CapScopeMonthly

	result := e.RunTrial([]*model.Member{m}, []string{"2024-06-10"}, map[string]int{"m1": 1}, cfg, NewRand(1))
	assert.Empty(t, result.Assignments)
	assert.Equal(t, []string{"2024-06-10"}, result.UnassignedDates)
}

func TestRunTrial_SlotTypeMonthlyCap(t *testing.T) {
	m := testMember("m1")
	snap := testSnapshot(m)
	snap.ShiftTypes["day"].MonthlyCap = intPtr(2)
	e := New(snap, nil)

	dates := []string{"2024-06-10", "2024-06-11", "2024-06-12"}
	result := e.RunTrial([]*model.Member{m}, dates, nil, generalConfig("day"), NewRand(1))

	assert.Len(t, result.Assignments, 2)
	assert.Len(t, result.UnassignedDates, 1)
}

func TestRunTrial_OnCallPairsRestAssignment(t *testing.T) {
	m := testMember("m1")
	e := New(testSnapshot(m), nil)

	result := e.RunTrial([]*model.Member{m}, []string{"2024-06-10"}, nil, onCallConfig(), NewRand(1))

	require.Len(t, result.Assignments, 2)
	primary, rest := result.Assignments[0], result.Assignments[1]
	assert.Equal(t, model.KindOnCallPrimary, primary.Kind)
	assert.Equal(t, "noc", primary.SlotTypeID)
	assert.Equal(t, "2024-06-10", primary.Date)
	assert.Equal(t, model.KindOnCallRest, rest.Kind)
	assert.Equal(t, "rest", rest.SlotTypeID)
	assert.Equal(t, "2024-06-11", rest.Date)
	assert.Equal(t, "m1", rest.MemberID)

	// Only the primary duty counts toward the member's counter
	assert.Equal(t, 1, result.Counts["m1"])
}

func TestRunTrial_RestPeriodSpacesDutiesApart(t *testing.T) {
	// One on-call member over six consecutive dates: the rest-period window
	// permits at most two duties (three days apart)
	m := testMember("m1")
	e := New(testSnapshot(m), nil)

	dates := []string{
		"2024-06-10", "2024-06-11", "2024-06-12",
		"2024-06-13", "2024-06-14", "2024-06-15",
	}
	result := e.RunTrial([]*model.Member{m}, dates, nil, onCallConfig(), NewRand(3))

	var duties []string
	for _, a := range result.Assignments {
		if a.Kind == model.KindOnCallPrimary {
			duties = append(duties, a.Date)
		}
	}
	assert.LessOrEqual(t, len(duties), 2)
	assert.Equal(t, len(dates), len(duties)+len(result.UnassignedDates))
}

func TestRunTrial_SkipsCoveredDates(t *testing.T) {
	holder := testMember("holder")
	holder.Shifts["2024-06-10"] = []model.Entry{{SlotTypeID: "day"}}
	m := testMember("m1")
	e := New(testSnapshot(holder, m), nil)

	dates := []string{"2024-06-10", "2024-06-11"}
	result := e.RunTrial([]*model.Member{m}, dates, nil, generalConfig("day"), NewRand(1))

	assert.Equal(t, []string{"2024-06-10"}, result.SkippedDates)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "2024-06-11", result.Assignments[0].Date)
}

func TestRunTrial_SkipRuleSkipsWholeDate(t *testing.T) {
	holder := testMember("holder")
	holder.Shifts["2024-06-10"] = []model.Entry{{SlotTypeID: "noc"}}
	m := testMember("m1")
	e := New(testSnapshot(holder, m), nil)

	cfg := generalConfig("day")
	cfg.SkipRules = []model.SkipRule{{ShiftTypeIDs: []string{"noc"}}}

	result := e.RunTrial([]*model.Member{m}, []string{"2024-06-10"}, nil, cfg, NewRand(1))
	assert.Empty(t, result.Assignments)
	assert.Equal(t, []string{"2024-06-10"}, result.SkippedDates)
	assert.Empty(t, result.UnassignedDates)
}

func TestRunTrial_MostConstrainedDateFirst(t *testing.T) {
	// m2 can only serve the 12th; the scarcity ordering must hand the 12th
	// to m2 before m2 is used up elsewhere
	m1 := testMember("m1")
	m2 := testMember("m2")
	m2.Vacations["2024-06-10"] = model.Vacation{Period: model.VacationFullDay}
	m2.Vacations["2024-06-11"] = model.Vacation{Period: model.VacationFullDay}

	e := New(testSnapshot(m1, m2), nil)
	cfg := generalConfig("day")
	cfg.MaxAssignments = intPtr(1)
	cfg.CapScope = model.CapScopeRun

	dates := []string{"2024-06-10", "2024-06-11", "2024-06-12"}
	result := e.RunTrial([]*model.Member{m1, m2}, dates, nil, cfg, NewRand(1))

	byDate := map[string]string{}
	for _, a := range result.Assignments {
		byDate[a.Date] = a.MemberID
	}
	assert.Equal(t, "m2", byDate["2024-06-12"])
	assert.Len(t, result.UnassignedDates, 1)
}

func TestRunTrial_SeededRunsAreReproducible(t *testing.T) {
	members := []*model.Member{testMember("m1"), testMember("m2"), testMember("m3")}
	dates := []string{"2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13"}

	e := New(testSnapshot(members...), nil)
	first := e.RunTrial(members, dates, nil, generalConfig("day"), NewRand(99))
	second := e.RunTrial(members, dates, nil, generalConfig("day"), NewRand(99))

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Counts, second.Counts)
}
