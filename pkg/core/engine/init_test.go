package engine

import (
	"time"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// permissiveSlot builds a slot type whose night-shift compatibility flags
// all allow adjacent on-call duty
func permissiveSlot(id string, coverage model.Coverage) *model.SlotType {
	return &model.SlotType{
		ID:             id,
		Name:           id,
		Coverage:       coverage,
		NextDayNightOK: true,
		SameDayNightOK: true,
		PrevDayNightOK: true,
	}
}

// testSnapshot builds a snapshot with the standard slot catalog used across
// the engine tests:
//
//	noc   night duty (Night)
//	rest  post-duty rest (AM+PM)
//	day   general day shift (AM+PM)
//	am    morning clinic (AM)
//	late  evening schedule whose NextDayNightOK flag is false
func testSnapshot(members ...*model.Member) *model.Snapshot {
	late := permissiveSlot("late", model.Coverage{PM: true})
	late.NextDayNightOK = false

	return &model.Snapshot{
		Members: members,
		ShiftTypes: map[string]*model.SlotType{
			"noc":  permissiveSlot("noc", model.Coverage{Night: true}),
			"rest": permissiveSlot("rest", model.Coverage{AM: true, PM: true}),
			"day":  permissiveSlot("day", model.Coverage{AM: true, PM: true}),
			"am":   permissiveSlot("am", model.Coverage{AM: true}),
		},
		ScheduleTypes: map[string]*model.SlotType{
			"late": late,
		},
		Holidays: map[string]string{},
		Presets:  map[string]*model.Preset{},
	}
}

// testMember builds a member with empty per-date data and junior on-call
// capability
func testMember(id string) *model.Member {
	return &model.Member{
		ID:          id,
		Name:        id,
		Team:        model.TeamA,
		Position:    model.PositionStaff,
		OnCallLevel: model.OnCallJunior,
		Schedules:   map[string][]model.Entry{},
		Shifts:      map[string][]model.Entry{},
		Vacations:   map[string]model.Vacation{},
		Locations:   map[string]string{},
	}
}

func onCallConfig() *model.RunConfig {
	return &model.RunConfig{
		Kind:           model.StepOnCall,
		SlotTypeID:     "noc",
		RestSlotTypeID: "rest",
	}
}

func generalConfig(slotTypeID string) *model.RunConfig {
	return &model.RunConfig{
		Kind:       model.StepGeneralShift,
		SlotTypeID: slotTypeID,
	}
}

func weekdayPtr(wd time.Weekday) *time.Weekday {
	return &wd
}

func intPtr(n int) *int {
	return &n
}
