package services

import (
	"context"
	"time"

	"work-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// TimeRange represents a time period with start and end times.
// End is exclusive.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CreateTaskInput carries the caller-supplied fields of a new task.
// Status is not part of it: new tasks always start in TO_DO.
type CreateTaskInput struct {
	Name         string
	Description  string
	ProjectStage string
	Priority     string // empty means the default priority
	DueDate      *time.Time
	ProjectID    *int64
	AssigneeID   *int64
	CheckerID    *int64
}

// UpdateTaskInput is a full-field replacement of a task's editable fields.
// Nil role ids clear the role.
type UpdateTaskInput struct {
	Name         string
	Description  string
	ProjectStage string
	Status       string
	Priority     string
	DueDate      *time.Time
	AssigneeID   *int64
	CheckerID    *int64
}

// LogTimeInput describes hours spent on a task on one calendar day
type LogTimeInput struct {
	TaskID          int64
	DateLogged      time.Time
	HoursLogged     decimal.Decimal
	WorkDescription string
}

// UpdateTimeLogInput is a partial update; only non-nil fields are applied
type UpdateTimeLogInput struct {
	DateLogged      *time.Time
	HoursLogged     *decimal.Decimal
	WorkDescription *string
}

// MonthlyAttendance is the day-by-day classification of one user's month
type MonthlyAttendance struct {
	UserID  int64                  `json:"user_id"`
	Year    int                    `json:"year"`
	Month   time.Month             `json:"month"`
	Days    []domain.DayAttendance `json:"days"`
	Present int                    `json:"present"`
	Absent  int                    `json:"absent"`
}

// TimeService owns the clock and the calendar-day arithmetic
type TimeService interface {
	// Clock
	Now() time.Time
	Location() *time.Location
	Today() time.Time

	// Time range operations
	IsToday(t time.Time) bool
	GetTodayRange() *TimeRange
	GetDateRange(date time.Time) *TimeRange
	GetMonthRange(year int, month time.Month) *TimeRange
}

// TaskService handles the task lifecycle, its authorization and the worklists
type TaskService interface {
	// Task lifecycle
	CreateTask(ctx context.Context, actor domain.Actor, in CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, actor domain.Actor, id int64) (*domain.Task, error)
	UpdateTaskFields(ctx context.Context, actor domain.Actor, id int64, in UpdateTaskInput) (*domain.Task, error)
	SetStatus(ctx context.Context, actor domain.Actor, id int64, status string) (*domain.Task, error)
	MarkCompletedAndChecked(ctx context.Context, actor domain.Actor, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, actor domain.Actor, id int64) (bool, error)

	// Worklists
	ListProjectTasks(ctx context.Context, actor domain.Actor, projectID int64, page domain.PageRequest) (domain.Page[domain.Task], error)
	ListAssignedTasks(ctx context.Context, actor domain.Actor, page domain.PageRequest) (domain.Page[domain.Task], error)
	ListReportedTasks(ctx context.Context, actor domain.Actor, page domain.PageRequest) (domain.Page[domain.Task], error)
	ListCheckingTasks(ctx context.Context, actor domain.Actor, page domain.PageRequest) (domain.Page[domain.Task], error)
}

// TimeLogService handles the time log ledger
type TimeLogService interface {
	LogTime(ctx context.Context, actor domain.Actor, in LogTimeInput) (*domain.TimeLog, error)
	UpdateTimeLog(ctx context.Context, actor domain.Actor, id int64, in UpdateTimeLogInput) (*domain.TimeLog, error)
	DeleteTimeLog(ctx context.Context, actor domain.Actor, id int64) (bool, error)

	ListByTask(ctx context.Context, actor domain.Actor, taskID int64) ([]domain.TimeLog, error)
	ListByUser(ctx context.Context, actor domain.Actor, userID int64) ([]domain.TimeLog, error)
	ListByUserInRange(ctx context.Context, actor domain.Actor, userID int64, from, to time.Time) ([]domain.TimeLog, error)
}

// AttendanceService handles clock-in/clock-out and attendance reporting
type AttendanceService interface {
	ClockIn(ctx context.Context, actor domain.Actor, notes string) (*domain.AttendanceEntry, error)
	ClockOut(ctx context.Context, actor domain.Actor, notes string) (*domain.AttendanceEntry, error)

	Status(ctx context.Context, actor domain.Actor) (*domain.AttendanceStatus, error)
	History(ctx context.Context, actor domain.Actor, from, to *time.Time) ([]domain.AttendanceEntry, error)
	Today(ctx context.Context, actor domain.Actor) ([]domain.AttendanceEntry, error)
	MonthlyReport(ctx context.Context, actor domain.Actor, userID int64, year int, month time.Month) (*MonthlyAttendance, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService       TimeService
	TaskService       TaskService
	TimeLogService    TimeLogService
	AttendanceService AttendanceService
}
