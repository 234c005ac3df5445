package domain

import (
	"time"
)

// DayClass is the monthly attendance classification of one calendar day.
type DayClass string

const (
	DayPresent DayClass = "PRESENT"
	DayAbsent  DayClass = "ABSENT"
	DayNoData  DayClass = "NO_DATA"
)

// DayAttendance pairs a calendar date with its classification.
type DayAttendance struct {
	Date  time.Time
	Class DayClass
}

// IsWorkingDay reports whether d is Monday through Saturday.
func IsWorkingDay(d time.Time) bool {
	return d.Weekday() != time.Sunday
}

// ClassifyDay classifies one day from the entries recorded on it.
// A day is PRESENT when any CLOCK_IN exists, whether or not it was closed.
// A working day strictly before today with no entries is ABSENT.
func ClassifyDay(day time.Time, entries []AttendanceEntry, today time.Time) DayClass {
	for _, e := range entries {
		if e.EntryType == EntryClockIn {
			return DayPresent
		}
	}
	if len(entries) == 0 && IsWorkingDay(day) && DateOf(day).Before(DateOf(today)) {
		return DayAbsent
	}
	return DayNoData
}

// ClassifyMonth classifies every day of the month. Entries are bucketed by
// their calendar day in loc; entries outside the month are ignored.
func ClassifyMonth(year int, month time.Month, entries []AttendanceEntry, today time.Time, loc *time.Location) []DayAttendance {
	byDay := make(map[int][]AttendanceEntry)
	for _, e := range entries {
		ts := e.Timestamp.In(loc)
		if ts.Year() != year || ts.Month() != month {
			continue
		}
		byDay[ts.Day()] = append(byDay[ts.Day()], e)
	}

	todayDate := DateOf(today.In(loc))
	days := daysIn(year, month)
	result := make([]DayAttendance, 0, days)
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		result = append(result, DayAttendance{
			Date:  date,
			Class: ClassifyDay(date, byDay[d], todayDate),
		})
	}
	return result
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
