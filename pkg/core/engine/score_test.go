package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

func TestRuleMatchesDay_ExcludesTakePrecedence(t *testing.T) {
	rule := model.ScoreRule{
		Weekdays:        []time.Weekday{time.Saturday},
		ExcludeHolidays: true,
	}

	saturday := model.Day{Date: "2024-06-15", Weekday: time.Saturday}
	assert.True(t, ruleMatchesDay(rule, saturday))

	holidaySaturday := model.Day{Date: "2024-06-15", Weekday: time.Saturday, Holiday: true}
	assert.False(t, ruleMatchesDay(rule, holidaySaturday))
}

func TestRuleMatchesDay_EmptyFilterMatchesEverything(t *testing.T) {
	rule := model.ScoreRule{Points: 1}

	assert.True(t, ruleMatchesDay(rule, model.Day{Weekday: time.Monday}))
	assert.True(t, ruleMatchesDay(rule, model.Day{Weekday: time.Sunday, Holiday: true}))
}

func TestRuleMatchesDay_IncludeFlags(t *testing.T) {
	rule := model.ScoreRule{
		Weekdays:        []time.Weekday{time.Friday},
		IncludeHolidays: true,
	}

	assert.True(t, ruleMatchesDay(rule, model.Day{Weekday: time.Friday}))
	assert.True(t, ruleMatchesDay(rule, model.Day{Weekday: time.Tuesday, Holiday: true}))
	assert.False(t, ruleMatchesDay(rule, model.Day{Weekday: time.Tuesday}))
}

func TestMemberScore_WeightsOccurrences(t *testing.T) {
	m := testMember("m1")
	// Two weekday duties and one Saturday duty
	m.Shifts["2024-06-10"] = []model.Entry{{SlotTypeID: "noc"}} // Monday
	m.Shifts["2024-06-12"] = []model.Entry{{SlotTypeID: "noc"}} // Wednesday
	m.Shifts["2024-06-15"] = []model.Entry{{SlotTypeID: "noc"}} // Saturday
	e := New(testSnapshot(m), nil)

	rules := []model.ScoreRule{
		{Points: 1, SlotTypeIDs: []string{"noc"}},
		{Points: 2, SlotTypeIDs: []string{"noc"}, Weekdays: []time.Weekday{time.Saturday, time.Sunday}},
	}

	// 3 duties at 1 point each, plus 2 extra points for the Saturday
	assert.Equal(t, 5, e.memberScore(m, NewLedger(), rules))
}

func TestMemberScore_CountsProvisionalAssignments(t *testing.T) {
	m := testMember("m1")
	e := New(testSnapshot(m), nil)

	led := NewLedger()
	led.Add(model.Assignment{Kind: model.KindOnCallPrimary, Date: "2024-06-10", MemberID: "m1", SlotTypeID: "noc"})

	rules := []model.ScoreRule{{Points: 3, SlotTypeIDs: []string{"noc"}}}
	assert.Equal(t, 3, e.memberScore(m, led, rules))
}

func TestMemberScore_IgnoresUntargetedSlotTypes(t *testing.T) {
	m := testMember("m1")
	m.Shifts["2024-06-10"] = []model.Entry{{SlotTypeID: "day"}}
	e := New(testSnapshot(m), nil)

	rules := []model.ScoreRule{{Points: 1, SlotTypeIDs: []string{"noc"}}}
	assert.Equal(t, 0, e.memberScore(m, NewLedger(), rules))

	// An empty target list covers every slot type
	rules = []model.ScoreRule{{Points: 1}}
	assert.Equal(t, 1, e.memberScore(m, NewLedger(), rules))
}
