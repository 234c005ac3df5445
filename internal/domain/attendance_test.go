package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsClockedIn(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)
	entry := func(kind EntryType, ts time.Time) *AttendanceEntry {
		e := NewAttendanceEntry(1, kind, ts, "")
		return &e
	}

	tests := []struct {
		name     string
		latest   *AttendanceEntry
		expected bool
	}{
		{"no entries", nil, false},
		{"same-day clock in", entry(EntryClockIn, now.Add(-3*time.Hour)), true},
		{"same-day clock out", entry(EntryClockOut, now.Add(-time.Hour)), false},
		{"stale clock in from yesterday", entry(EntryClockIn, now.Add(-20*time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsClockedIn(tt.latest, now, loc))
			assert.Equal(t, !tt.expected, CanClockIn(tt.latest, now, loc))
			assert.Equal(t, tt.expected, CanClockOut(tt.latest, now, loc))
		})
	}
}

func TestSameDay_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	a := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC) // 23:00 JST
	b := time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC) // 01:00 JST next day

	assert.True(t, SameDay(a, b, time.UTC))
	assert.False(t, SameDay(a, b, tokyo))
}

func TestClassifyMonth(t *testing.T) {
	loc := time.UTC
	// March 2024: the 1st is a Friday, the 3rd a Sunday
	today := time.Date(2024, 3, 6, 10, 0, 0, 0, loc)
	at := func(day, hour int) time.Time { return time.Date(2024, 3, day, hour, 0, 0, 0, loc) }

	entries := []AttendanceEntry{
		NewAttendanceEntry(1, EntryClockIn, at(1, 9), ""),
		NewAttendanceEntry(1, EntryClockOut, at(1, 17), ""),
		NewAttendanceEntry(1, EntryClockIn, at(4, 9), ""),  // never closed
		NewAttendanceEntry(1, EntryClockOut, at(5, 1), ""), // stray clock out only
		NewAttendanceEntry(1, EntryClockIn, at(6, 8), ""),
		NewAttendanceEntry(1, EntryClockIn, time.Date(2024, 2, 29, 9, 0, 0, 0, loc), ""),
	}

	days := ClassifyMonth(2024, time.March, entries, today, loc)

	assert.Len(t, days, 31)
	expected := map[int]DayClass{
		1: DayPresent, // clocked in and out
		2: DayAbsent,  // Saturday counts as a working day
		3: DayNoData,  // Sunday
		4: DayPresent, // clock in without clock out
		5: DayNoData,  // entries exist but none is a clock in
		6: DayPresent, // today with a clock in
		7: DayNoData,  // future
	}
	for day, class := range expected {
		assert.Equalf(t, class, days[day-1].Class, "day %d", day)
	}
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), days[0].Date)
}

func TestClassifyMonth_TodayWithoutEntriesIsNoData(t *testing.T) {
	today := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC) // Monday
	days := ClassifyMonth(2024, time.March, nil, today, time.UTC)

	assert.Equal(t, DayNoData, days[3].Class)
	assert.Equal(t, DayAbsent, days[0].Class)
	assert.Len(t, ClassifyMonth(2024, time.February, nil, today, time.UTC), 29)
}
