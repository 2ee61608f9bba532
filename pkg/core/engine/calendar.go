package engine

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// BuildDays generates derived calendar days for an inclusive date range.
// Ranges may span month boundaries; the holiday map is consulted one day
// past the end so the final day's pre-holiday flag is correct.
func BuildDays(window model.DateRange, holidays map[string]string) ([]model.Day, error) {
	start, err := time.Parse(model.DateFormat, window.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid range start %q: %w", window.Start, err)
	}
	end, err := time.Parse(model.DateFormat, window.End)
	if err != nil {
		return nil, fmt.Errorf("invalid range end %q: %w", window.End, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s precedes start %s", window.End, window.Start)
	}

	var days []model.Day
	for t := start; !t.After(end); t = t.AddDate(0, 0, 1) {
		date := t.Format(model.DateFormat)
		next := t.AddDate(0, 0, 1).Format(model.DateFormat)
		_, holiday := holidays[date]
		_, preHoliday := holidays[next]
		days = append(days, model.Day{
			Date:       date,
			Weekday:    t.Weekday(),
			Holiday:    holiday,
			PreHoliday: preHoliday,
		})
	}
	return days, nil
}

// DayFor derives the calendar day for a single date
func DayFor(date string, holidays map[string]string) (model.Day, error) {
	t, err := time.Parse(model.DateFormat, date)
	if err != nil {
		return model.Day{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	next := t.AddDate(0, 0, 1).Format(model.DateFormat)
	_, holiday := holidays[date]
	_, preHoliday := holidays[next]
	return model.Day{Date: date, Weekday: t.Weekday(), Holiday: holiday, PreHoliday: preHoliday}, nil
}

// AddDays shifts a date by n calendar days
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(model.DateFormat, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, n).Format(model.DateFormat), nil
}

// ResolveDates applies a date rule within the window. Precedence: explicit
// dates (filtered to the window), then an rrule expression, then the
// weekday/holiday filter, then every day in the window.
func (e *Engine) ResolveDates(rule model.DateRule, window model.DateRange) ([]string, error) {
	if len(rule.Dates) > 0 {
		var dates []string
		for _, d := range rule.Dates {
			if window.Contains(d) {
				dates = append(dates, d)
			}
		}
		return dates, nil
	}

	if rule.RRule != "" {
		return expandRRule(rule.RRule, window)
	}

	days, err := BuildDays(window, e.snap.Holidays)
	if err != nil {
		return nil, err
	}

	var dates []string
	for _, day := range days {
		if !matchesDayFilter(rule, day) {
			continue
		}
		dates = append(dates, day.Date)
	}
	return dates, nil
}

func matchesDayFilter(rule model.DateRule, day model.Day) bool {
	if rule.HolidaysOnly && !day.Holiday {
		return false
	}
	if rule.SkipHolidays && day.Holiday {
		return false
	}
	if len(rule.Weekdays) > 0 {
		found := false
		for _, wd := range rule.Weekdays {
			if day.Weekday == wd {
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

func expandRRule(expr string, window model.DateRange) ([]string, error) {
	rule, err := rrule.StrToRRule(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", expr, err)
	}

	start, err := time.Parse(model.DateFormat, window.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid range start %q: %w", window.Start, err)
	}
	end, err := time.Parse(model.DateFormat, window.End)
	if err != nil {
		return nil, fmt.Errorf("invalid range end %q: %w", window.End, err)
	}
	rule.DTStart(start)

	var dates []string
	for _, t := range rule.Between(start, end.AddDate(0, 0, 1), true) {
		if t.After(end.AddDate(0, 0, 1)) {
			break
		}
		date := t.Format(model.DateFormat)
		if window.Contains(date) {
			dates = append(dates, date)
		}
	}
	return dates, nil
}
