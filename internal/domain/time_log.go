package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage and wire layout of calendar dates.
const DateLayout = "2006-01-02"

// HoursScale is the number of decimal places kept for logged hours.
const HoursScale = 2

// TimeLog records hours a user spent on a task on one calendar day.
type TimeLog struct {
	ID              int64
	TaskID          int64
	UserID          int64
	DateLogged      time.Time
	HoursLogged     decimal.Decimal
	WorkDescription string
	CreatedAt       time.Time
}

// NewTimeLog creates a time log owned by userID.
func NewTimeLog(taskID, userID int64, date time.Time, hours decimal.Decimal, description string) TimeLog {
	return TimeLog{
		TaskID:          taskID,
		UserID:          userID,
		DateLogged:      DateOf(date),
		HoursLogged:     hours,
		WorkDescription: description,
	}
}

// IsOwnedBy reports whether userID created the log.
func (tl TimeLog) IsOwnedBy(userID int64) bool {
	return tl.UserID == userID
}

// IsValid checks if the time log has valid data.
func (tl TimeLog) IsValid() bool {
	return tl.TaskID > 0 && tl.UserID > 0 && !tl.DateLogged.IsZero() &&
		tl.HoursLogged.IsPositive() && tl.WorkDescription != ""
}

// DateOf truncates t to its calendar date, expressed at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
