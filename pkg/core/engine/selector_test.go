package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

func newRunState(dates ...string) *RunState {
	return &RunState{
		Remaining: dates,
		Counts:    map[string]int{},
		Initial:   map[string]int{},
		Ledger:    NewLedger(),
	}
}

func TestSelectCandidate_EmptySetReturnsNil(t *testing.T) {
	e := New(testSnapshot(), nil)
	state := newRunState()

	chosen := e.SelectCandidate("2024-06-10", nil, e.Snapshot().SlotType("day"), state, generalConfig("day"), NewRand(1))
	assert.Nil(t, chosen)
}

func TestSelectCandidate_FewestAssignmentsWins(t *testing.T) {
	m1 := testMember("m1")
	m2 := testMember("m2")
	e := New(testSnapshot(m1, m2), nil)
	slot := e.Snapshot().SlotType("day")
	cfg := generalConfig("day")

	state := newRunState()
	state.Counts["m1"] = 3
	state.Counts["m2"] = 1

	// Whatever the random source does, the lower counter wins outright
	for seed := int64(0); seed < 10; seed++ {
		chosen := e.SelectCandidate("2024-06-10", []*model.Member{m1, m2}, slot, state, cfg, NewRand(seed))
		require.NotNil(t, chosen)
		assert.Equal(t, "m2", chosen.ID)
	}
}

func TestSelectCandidate_ScoreModeUsesWeightedScore(t *testing.T) {
	// m1 has fewer duties but they are expensive weekend ones; score mode
	// must prefer m2
	m1 := testMember("m1")
	m1.Shifts["2024-06-15"] = []model.Entry{{SlotTypeID: "noc"}} // Saturday
	m2 := testMember("m2")
	m2.Shifts["2024-06-10"] = []model.Entry{{SlotTypeID: "noc"}}
	m2.Shifts["2024-06-12"] = []model.Entry{{SlotTypeID: "noc"}}
	e := New(testSnapshot(m1, m2), nil)
	slot := e.Snapshot().SlotType("noc")

	cfg := onCallConfig()
	cfg.Fairness = model.FairnessScore
	cfg.ScoreRules = []model.ScoreRule{
		{Points: 1, SlotTypeIDs: []string{"noc"}},
		{Points: 5, SlotTypeIDs: []string{"noc"}, Weekdays: []time.Weekday{time.Saturday, time.Sunday}},
	}

	state := newRunState()
	state.Counts["m1"] = 1
	state.Counts["m2"] = 2

	chosen := e.SelectCandidate("2024-06-20", []*model.Member{m1, m2}, slot, state, cfg, NewRand(7))
	require.NotNil(t, chosen)
	assert.Equal(t, "m2", chosen.ID)
}

func TestSelectCandidate_ScarcityBreaksTies(t *testing.T) {
	// Equal counters; m1 is on leave for the rest of the window so m1 has
	// no other chance to serve and must get this date
	m1 := testMember("m1")
	m1.Leaves = []model.DateRange{{Start: "2024-06-11", End: "2024-06-30"}}
	m2 := testMember("m2")
	e := New(testSnapshot(m1, m2), nil)
	slot := e.Snapshot().SlotType("day")
	cfg := generalConfig("day")

	state := newRunState("2024-06-10", "2024-06-12", "2024-06-14")

	for seed := int64(0); seed < 10; seed++ {
		chosen := e.SelectCandidate("2024-06-10", []*model.Member{m1, m2}, slot, state, cfg, NewRand(seed))
		require.NotNil(t, chosen)
		assert.Equal(t, "m1", chosen.ID)
	}
}

func TestSelectCandidate_SeededPickIsReproducible(t *testing.T) {
	members := []*model.Member{testMember("m1"), testMember("m2"), testMember("m3")}
	e := New(testSnapshot(members...), nil)
	slot := e.Snapshot().SlotType("day")
	cfg := generalConfig("day")

	first := e.SelectCandidate("2024-06-10", members, slot, newRunState("2024-06-10"), cfg, NewRand(42))
	second := e.SelectCandidate("2024-06-10", members, slot, newRunState("2024-06-10"), cfg, NewRand(42))
	require.NotNil(t, first)
	assert.Equal(t, first.ID, second.ID)
}

func TestFilterByMin(t *testing.T) {
	m1 := testMember("m1")
	m2 := testMember("m2")
	m3 := testMember("m3")

	counts := map[string]int{"m1": 2, "m2": 0, "m3": 0}
	subset := filterByMin([]*model.Member{m1, m2, m3}, func(m *model.Member) int {
		return counts[m.ID]
	})

	require.Len(t, subset, 2)
	assert.Equal(t, "m2", subset[0].ID)
	assert.Equal(t, "m3", subset[1].ID)
}

func TestFilterByMin_EvaluatesKeyOncePerMember(t *testing.T) {
	members := []*model.Member{testMember("m1"), testMember("m2"), testMember("m3")}

	calls := map[string]int{}
	filterByMin(members, func(m *model.Member) int {
		calls[m.ID]++
		return 0
	})

	for id, n := range calls {
		assert.Equal(t, 1, n, "key for %s evaluated %d times", id, n)
	}
	assert.Len(t, calls, 3)
}
