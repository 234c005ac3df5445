package domain

import (
	"time"
)

// AttendanceEntry is one clock-in or clock-out event. Entries are append-only.
type AttendanceEntry struct {
	ID        int64
	UserID    int64
	EntryType EntryType
	Timestamp time.Time
	Notes     string
}

// NewAttendanceEntry creates an entry stamped at ts.
func NewAttendanceEntry(userID int64, entryType EntryType, ts time.Time, notes string) AttendanceEntry {
	return AttendanceEntry{
		UserID:    userID,
		EntryType: entryType,
		Timestamp: ts,
		Notes:     notes,
	}
}

// AttendanceStatus is the derived day-state of a user.
type AttendanceStatus struct {
	IsClockedIn  bool
	LastEntry    *AttendanceEntry
	TodayEntries []AttendanceEntry
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	y1, m1, d1 := a.In(loc).Date()
	y2, m2, d2 := b.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsClockedIn derives the clocked-in state from the most recent entry.
// A CLOCK_IN from an earlier day does not count.
func IsClockedIn(latest *AttendanceEntry, now time.Time, loc *time.Location) bool {
	return latest != nil && latest.EntryType == EntryClockIn && SameDay(latest.Timestamp, now, loc)
}

// CanClockIn reports whether a CLOCK_IN may be appended after latest.
func CanClockIn(latest *AttendanceEntry, now time.Time, loc *time.Location) bool {
	return !IsClockedIn(latest, now, loc)
}

// CanClockOut reports whether a CLOCK_OUT may be appended after latest.
func CanClockOut(latest *AttendanceEntry, now time.Time, loc *time.Location) bool {
	return IsClockedIn(latest, now, loc)
}
