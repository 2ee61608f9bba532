package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// snapshotPadding widens the loaded window so the rest-period checks can
// look two days past either edge
const snapshotPadding = 2

// LoadSnapshot reads everything the engine needs for the window: members
// with month-resolved attributes, slot type catalogs, the holiday calendar,
// existing entries, and the stored presets.
func (d *DB) LoadSnapshot(ctx context.Context, window model.DateRange) (*model.Snapshot, error) {
	padded, err := padWindow(window, snapshotPadding)
	if err != nil {
		return nil, err
	}
	month := window.Start[:7]

	snap := &model.Snapshot{
		ShiftTypes:    make(map[string]*model.SlotType),
		ScheduleTypes: make(map[string]*model.SlotType),
		Holidays:      make(map[string]string),
		Presets:       make(map[string]*model.Preset),
	}

	if err := d.loadSlotTypes(ctx, snap); err != nil {
		return nil, err
	}
	if err := d.loadHolidays(ctx, padded, snap); err != nil {
		return nil, err
	}
	if err := d.loadDefaults(ctx, snap); err != nil {
		return nil, err
	}

	members, err := d.loadMembers(ctx, month)
	if err != nil {
		return nil, err
	}
	if err := d.loadMemberData(ctx, padded, members); err != nil {
		return nil, err
	}
	snap.Members = members

	presets, err := d.GetPresets(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range presets {
		snap.Presets[p.ID] = p
	}

	return snap, nil
}

func padWindow(window model.DateRange, days int) (model.DateRange, error) {
	start, err := time.Parse(model.DateFormat, window.Start)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("invalid window start %q: %w", window.Start, err)
	}
	end, err := time.Parse(model.DateFormat, window.End)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("invalid window end %q: %w", window.End, err)
	}
	return model.DateRange{
		Start: start.AddDate(0, 0, -days).Format(model.DateFormat),
		End:   end.AddDate(0, 0, days).Format(model.DateFormat),
	}, nil
}

func (d *DB) loadSlotTypes(ctx context.Context, snap *model.Snapshot) error {
	rows, err := d.pool.Query(ctx, `
		SELECT id, catalog, name, am, pm, night,
		       next_day_night_ok, same_day_night_ok, prev_day_night_ok,
		       monthly_cap, default_location_id
		FROM slot_types
	`)
	if err != nil {
		return fmt.Errorf("failed to query slot types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st model.SlotType
		var catalog string
		var monthlyCap *int
		if err := rows.Scan(&st.ID, &catalog, &st.Name,
			&st.Coverage.AM, &st.Coverage.PM, &st.Coverage.Night,
			&st.NextDayNightOK, &st.SameDayNightOK, &st.PrevDayNightOK,
			&monthlyCap, &st.DefaultLocationID); err != nil {
			return fmt.Errorf("failed to scan slot type: %w", err)
		}
		st.MonthlyCap = monthlyCap
		if catalog == "schedule" {
			snap.ScheduleTypes[st.ID] = &st
		} else {
			snap.ShiftTypes[st.ID] = &st
		}
	}
	return rows.Err()
}

func (d *DB) loadHolidays(ctx context.Context, window model.DateRange, snap *model.Snapshot) error {
	rows, err := d.pool.Query(ctx, `
		SELECT date, name FROM holidays WHERE date >= $1 AND date <= $2
	`, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date, name string
		if err := rows.Scan(&date, &name); err != nil {
			return fmt.Errorf("failed to scan holiday: %w", err)
		}
		snap.Holidays[date] = name
	}
	return rows.Err()
}

func (d *DB) loadDefaults(ctx context.Context, snap *model.Snapshot) error {
	rows, err := d.pool.Query(ctx, `SELECT key, location_id FROM location_defaults`)
	if err != nil {
		return fmt.Errorf("failed to query location defaults: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, locationID string
		if err := rows.Scan(&key, &locationID); err != nil {
			return fmt.Errorf("failed to scan location default: %w", err)
		}
		switch key {
		case "research_day":
			snap.Defaults.ResearchDayLocationID = locationID
		case "weekday":
			snap.Defaults.WeekdayLocationID = locationID
		case "holiday":
			snap.Defaults.HolidayLocationID = locationID
		}
	}
	return rows.Err()
}

func (d *DB) loadMembers(ctx context.Context, month string) ([]*model.Member, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT m.id, m.name, mm.team, mm.position, mm.oncall_level,
		       mm.cardiac, mm.obstetric, mm.icu, mm.remaining_duty,
		       mm.research_day, mm.seconded
		FROM members m
		JOIN member_months mm ON mm.member_id = m.id
		WHERE mm.month = $1
		ORDER BY m.id
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []*model.Member
	for rows.Next() {
		m := &model.Member{
			Schedules: make(map[string][]model.Entry),
			Shifts:    make(map[string][]model.Entry),
			Vacations: make(map[string]model.Vacation),
			Locations: make(map[string]string),
		}
		var team, position string
		var level int
		var researchDay *int
		if err := rows.Scan(&m.ID, &m.Name, &team, &position, &level,
			&m.Skills.Cardiac, &m.Skills.Obstetric, &m.Skills.ICU, &m.Skills.RemainingDuty,
			&researchDay, &m.Seconded); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Team = model.Team(team)
		m.Position = model.Position(position)
		m.OnCallLevel = model.OnCallLevel(level)
		if researchDay != nil {
			wd := time.Weekday(*researchDay)
			m.ResearchDay = &wd
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}

// loadMemberData fills the per-date collections of each member for the
// padded window
func (d *DB) loadMemberData(ctx context.Context, window model.DateRange, members []*model.Member) error {
	byID := make(map[string]*model.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	rows, err := d.pool.Query(ctx, `
		SELECT member_id, start_date, end_date FROM leaves
		WHERE start_date <= $2 AND end_date >= $1
	`, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("failed to query leaves: %w", err)
	}
	for rows.Next() {
		var memberID string
		var r model.DateRange
		if err := rows.Scan(&memberID, &r.Start, &r.End); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan leave: %w", err)
		}
		if m, ok := byID[memberID]; ok {
			m.Leaves = append(m.Leaves, r)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating leaves: %w", err)
	}

	rows, err = d.pool.Query(ctx, `
		SELECT member_id, date, schedule_type_id, location_id FROM schedules
		WHERE date >= $1 AND date <= $2
	`, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("failed to query schedules: %w", err)
	}
	for rows.Next() {
		var memberID, date string
		var entry model.Entry
		if err := rows.Scan(&memberID, &date, &entry.SlotTypeID, &entry.LocationID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan schedule: %w", err)
		}
		if m, ok := byID[memberID]; ok {
			m.Schedules[date] = append(m.Schedules[date], entry)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating schedules: %w", err)
	}

	rows, err = d.pool.Query(ctx, `
		SELECT member_id, date, shift_type_id, location_id FROM shifts
		WHERE date >= $1 AND date <= $2
	`, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("failed to query shifts: %w", err)
	}
	for rows.Next() {
		var memberID, date string
		var entry model.Entry
		if err := rows.Scan(&memberID, &date, &entry.SlotTypeID, &entry.LocationID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan shift: %w", err)
		}
		if m, ok := byID[memberID]; ok {
			m.Shifts[date] = append(m.Shifts[date], entry)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating shifts: %w", err)
	}

	rows, err = d.pool.Query(ctx, `
		SELECT member_id, date, period, type_id, location_id FROM vacations
		WHERE date >= $1 AND date <= $2
	`, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("failed to query vacations: %w", err)
	}
	for rows.Next() {
		var memberID, date, period string
		var v model.Vacation
		if err := rows.Scan(&memberID, &date, &period, &v.TypeID, &v.LocationID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan vacation: %w", err)
		}
		v.Period = model.VacationPeriod(period)
		if m, ok := byID[memberID]; ok {
			m.Vacations[date] = v
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating vacations: %w", err)
	}

	rows, err = d.pool.Query(ctx, `
		SELECT member_id, date, location_id FROM location_overrides
		WHERE date >= $1 AND date <= $2
	`, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("failed to query location overrides: %w", err)
	}
	for rows.Next() {
		var memberID, date, locationID string
		if err := rows.Scan(&memberID, &date, &locationID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan location override: %w", err)
		}
		if m, ok := byID[memberID]; ok {
			m.Locations[date] = locationID
		}
	}
	rows.Close()
	return rows.Err()
}
