// Package report aggregates receipts into the sales dashboard: date ranges
// with shifts, time buckets, per-method/item/category totals and sortable,
// paginated listings. Every function is pure; the current time is an input.
package report

import (
	"errors"
	"fmt"
	"time"
)

// Filter names a date range.
type Filter string

const (
	Today     Filter = "today"
	Yesterday Filter = "yesterday"
	Week      Filter = "week"
	Month     Filter = "month"
	Custom    Filter = "custom"
)

// Shift narrows a single-day range.
type Shift string

const (
	AllDay  Shift = "all"
	Morning Shift = "morning"
	Night   Shift = "night"
)

var (
	// ErrUnknownFilter is returned for a filter name that does not exist.
	ErrUnknownFilter = errors.New("unknown date filter")
	// ErrUnknownShift is returned for a shift name that does not exist.
	ErrUnknownShift = errors.New("unknown shift")
	// ErrInvalidClock is returned when a shift boundary is not HH:MM.
	ErrInvalidClock = errors.New("invalid time of day")
	// ErrInvalidCustomRange is returned when a custom range ends before it starts.
	ErrInvalidCustomRange = errors.New("custom range ends before it starts")
)

// Clock is a time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("%w %q", ErrInvalidClock, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On returns the instant of c on the calendar day of day, in day's location.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Shifts are the configured shift boundaries. The morning shift runs from
// MorningStart to MorningEnd; the night shift runs from MorningEnd to NightEnd
// on the following day.
type Shifts struct {
	MorningStart Clock
	MorningEnd   Clock
	NightEnd     Clock
}

// ParseShifts builds Shifts from "HH:MM" settings.
func ParseShifts(morningStart, morningEnd, nightEnd string) (Shifts, error) {
	ms, err := ParseClock(morningStart)
	if err != nil {
		return Shifts{}, err
	}
	me, err := ParseClock(morningEnd)
	if err != nil {
		return Shifts{}, err
	}
	ne, err := ParseClock(nightEnd)
	if err != nil {
		return Shifts{}, err
	}
	return Shifts{MorningStart: ms, MorningEnd: me, NightEnd: ne}, nil
}

// BusinessDay returns the calendar day, at midnight, whose business day
// contains t. Instants before MorningStart belong to the previous day.
func (s Shifts) BusinessDay(t time.Time) time.Time {
	day := midnight(t)
	if t.Before(s.MorningStart.On(day)) {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// Range is the half-open interval [Start, End).
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration is End minus Start.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains reports whether t lies in [Start, End).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Query selects the range to report on. CustomStart and CustomEnd are
// calendar days, both inclusive, and are read only for the Custom filter.
type Query struct {
	Filter      Filter
	Shift       Shift
	CustomStart time.Time
	CustomEnd   time.Time
}

// Resolve turns q into a concrete range. Single-day queries (today,
// yesterday, and a custom range of one day) honour the shift; week and month
// use calendar-day bounds and ignore it.
func Resolve(q Query, shifts Shifts, now time.Time) (Range, error) {
	shift := q.Shift
	if shift == "" {
		shift = AllDay
	}
	if shift != AllDay && shift != Morning && shift != Night {
		return Range{}, fmt.Errorf("%w %q", ErrUnknownShift, q.Shift)
	}

	switch q.Filter {
	case Today, "":
		return shiftRange(shifts.BusinessDay(now), shift, shifts), nil
	case Yesterday:
		return shiftRange(shifts.BusinessDay(now).AddDate(0, 0, -1), shift, shifts), nil
	case Week:
		return lastDays(now, 7), nil
	case Month:
		return lastDays(now, 30), nil
	case Custom:
		start := midnight(q.CustomStart.In(now.Location()))
		end := midnight(q.CustomEnd.In(now.Location()))
		if end.Before(start) {
			return Range{}, ErrInvalidCustomRange
		}
		if start.Equal(end) {
			return shiftRange(start, shift, shifts), nil
		}
		return Range{Start: start, End: end.AddDate(0, 0, 1)}, nil
	default:
		return Range{}, fmt.Errorf("%w %q", ErrUnknownFilter, q.Filter)
	}
}

func shiftRange(day time.Time, shift Shift, s Shifts) Range {
	next := day.AddDate(0, 0, 1)
	switch shift {
	case Morning:
		return Range{Start: s.MorningStart.On(day), End: s.MorningEnd.On(day)}
	case Night:
		return Range{Start: s.MorningEnd.On(day), End: s.NightEnd.On(next)}
	default:
		return Range{Start: s.MorningStart.On(day), End: s.NightEnd.On(next)}
	}
}

func lastDays(now time.Time, n int) Range {
	today := midnight(now)
	return Range{Start: today.AddDate(0, 0, -(n - 1)), End: today.AddDate(0, 0, 1)}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
