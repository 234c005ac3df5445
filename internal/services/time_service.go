package services

import (
	"time"

	"work-tracker/internal/domain"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	now func() time.Time
	loc *time.Location
}

// NewTimeService creates a TimeService on the wall clock. Calendar days are
// computed in loc; a nil loc means time.Local.
func NewTimeService(loc *time.Location) TimeService {
	return NewTimeServiceWithClock(loc, time.Now)
}

// NewTimeServiceWithClock creates a TimeService reading the time from now
func NewTimeServiceWithClock(loc *time.Location, now func() time.Time) TimeService {
	if loc == nil {
		loc = time.Local
	}
	return &timeServiceImpl{now: now, loc: loc}
}

// Now returns the current time in UTC. Stored timestamps carry second precision.
func (t *timeServiceImpl) Now() time.Time {
	return t.now().UTC().Truncate(time.Second)
}

// Location returns the zone calendar days are evaluated in
func (t *timeServiceImpl) Location() *time.Location {
	return t.loc
}

// Today returns the current calendar date at midnight UTC
func (t *timeServiceImpl) Today() time.Time {
	return domain.DateOf(t.Now().In(t.loc))
}

// IsToday checks if a given time falls on today's calendar day
func (t *timeServiceImpl) IsToday(timeValue time.Time) bool {
	return domain.SameDay(timeValue, t.Now(), t.loc)
}

// GetTodayRange returns the time range for today (full day)
func (t *timeServiceImpl) GetTodayRange() *TimeRange {
	return t.GetDateRange(t.Today())
}

// GetDateRange returns the time range for a specific calendar date (full day).
// Only the year, month and day of date are used.
func (t *timeServiceImpl) GetDateRange(date time.Time) *TimeRange {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, t.loc)
	return &TimeRange{
		Start: startOfDay,
		End:   startOfDay.AddDate(0, 0, 1),
	}
}

// GetMonthRange returns the time range covering a whole calendar month
func (t *timeServiceImpl) GetMonthRange(year int, month time.Month) *TimeRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, t.loc)
	return &TimeRange{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}
