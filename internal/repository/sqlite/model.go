package sqlite

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task is a row of the tasks table. Enum columns hold their canonical names.
type Task struct {
	ID           int64
	Name         string
	Description  string
	Status       string
	Priority     string
	DueDate      *time.Time // calendar date, NULL when unset
	ProjectStage string
	ProjectID    *int64
	ReporterID   int64
	AssigneeID   *int64
	CheckerID    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TimeLog is a row of the time_logs table.
type TimeLog struct {
	ID              int64
	TaskID          int64
	UserID          int64
	DateLogged      time.Time
	HoursLogged     decimal.Decimal
	WorkDescription string
	CreatedAt       time.Time
}

// AttendanceEntry is a row of the attendance_entries table.
type AttendanceEntry struct {
	ID        int64
	UserID    int64
	EntryType string
	Timestamp time.Time
	Notes     string // empty is stored as NULL
}

type Organization struct {
	ID   int64
	Name string
}

type User struct {
	ID             int64
	Username       string
	DisplayName    string
	OrganizationID *int64
}

type Project struct {
	ID             int64
	Name           string
	OrganizationID int64
}
