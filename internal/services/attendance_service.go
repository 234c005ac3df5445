package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"work-tracker/internal/authz"
	"work-tracker/internal/domain"
	"work-tracker/internal/errors"
	"work-tracker/internal/metrics"
	"work-tracker/internal/repository/sqlite"
	"work-tracker/internal/validation"

	"github.com/sirupsen/logrus"
)

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	repo                sqlite.Repository
	timeService         TimeService
	guard               *authz.Guard
	mapper              *domain.Mapper
	attendanceValidator *validation.AttendanceValidator
	logger              logrus.FieldLogger
	metrics             *metrics.Metrics
	locks               *userLocks
}

// NewAttendanceService creates a new AttendanceService instance
func NewAttendanceService(repo sqlite.Repository, timeService TimeService, guard *authz.Guard,
	v *validation.Validator, logger logrus.FieldLogger, m *metrics.Metrics) AttendanceService {
	return &attendanceServiceImpl{
		repo:                repo,
		timeService:         timeService,
		guard:               guard,
		mapper:              domain.NewMapper(),
		attendanceValidator: validation.NewAttendanceValidatorWith(v),
		logger:              logger.WithField("component", "attendance_service"),
		metrics:             m,
		locks:               newUserLocks(),
	}
}

// ClockIn appends a CLOCK_IN unless the actor is already clocked in today
func (a *attendanceServiceImpl) ClockIn(ctx context.Context, actor domain.Actor, notes string) (*domain.AttendanceEntry, error) {
	return a.appendEntry(ctx, actor, domain.EntryClockIn, notes, domain.CanClockIn, "already clocked in today")
}

// ClockOut appends a CLOCK_OUT when the actor is clocked in today
func (a *attendanceServiceImpl) ClockOut(ctx context.Context, actor domain.Actor, notes string) (*domain.AttendanceEntry, error) {
	return a.appendEntry(ctx, actor, domain.EntryClockOut, notes, domain.CanClockOut, "not clocked in today")
}

// appendEntry serializes the read-check-append sequence per user. The
// transaction begins IMMEDIATE, so other processes are held off as well.
func (a *attendanceServiceImpl) appendEntry(ctx context.Context, actor domain.Actor, entryType domain.EntryType, notes string,
	allowed func(*domain.AttendanceEntry, time.Time, *time.Location) bool, rejection string) (*domain.AttendanceEntry, error) {
	if err := a.attendanceValidator.ValidateNotes(notes); err != nil {
		return nil, validation.ToInvalidArgument("invalid notes", err)
	}

	unlock := a.locks.lock(actor.UserID)
	defer unlock()

	var entry domain.AttendanceEntry
	err := a.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		latestRow, err := tx.GetLatestAttendanceEntry(ctx, actor.UserID)
		if err != nil {
			return err
		}

		now := a.timeService.Now()
		if !allowed(a.mapper.Attendance.FromDatabasePtr(latestRow), now, a.timeService.Location()) {
			return errors.NewInvalidStateError(fmt.Sprintf("cannot %s: %s", entryLabel(entryType), rejection))
		}

		entry = domain.NewAttendanceEntry(actor.UserID, entryType, now, notes)
		row := a.mapper.Attendance.ToDatabase(entry)
		if err := tx.CreateAttendanceEntry(ctx, &row); err != nil {
			return err
		}
		entry.ID = row.ID
		return nil
	})
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeInvalidState) {
			a.metrics.AttendanceRejected(string(entryType))
			a.logger.WithFields(logrus.Fields{
				"user_id":    actor.UserID,
				"entry_type": entryType,
			}).Warn("attendance entry rejected")
		}
		return nil, err
	}

	a.metrics.AttendanceRecorded(string(entryType))
	a.logger.WithFields(logrus.Fields{
		"user_id":    actor.UserID,
		"entry_type": entryType,
		"entry_id":   entry.ID,
	}).Info("attendance recorded")
	return &entry, nil
}

// Status derives the actor's current day-state
func (a *attendanceServiceImpl) Status(ctx context.Context, actor domain.Actor) (*domain.AttendanceStatus, error) {
	latestRow, err := a.repo.GetLatestAttendanceEntry(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	today, err := a.Today(ctx, actor)
	if err != nil {
		return nil, err
	}

	latest := a.mapper.Attendance.FromDatabasePtr(latestRow)
	return &domain.AttendanceStatus{
		IsClockedIn:  domain.IsClockedIn(latest, a.timeService.Now(), a.timeService.Location()),
		LastEntry:    latest,
		TodayEntries: today,
	}, nil
}

// History lists the actor's entries, most recent first. Both bounds are
// optional calendar dates; to covers its whole day.
func (a *attendanceServiceImpl) History(ctx context.Context, actor domain.Actor, from, to *time.Time) ([]domain.AttendanceEntry, error) {
	if err := a.attendanceValidator.ValidateHistoryRange(from, to); err != nil {
		return nil, validation.ToInvalidArgument("invalid date range", err)
	}

	var start, end *time.Time
	if from != nil {
		start = &a.timeService.GetDateRange(*from).Start
	}
	if to != nil {
		end = &a.timeService.GetDateRange(*to).End
	}
	return a.list(ctx, actor.UserID, start, end)
}

// Today lists the actor's entries of the current calendar day, most recent first
func (a *attendanceServiceImpl) Today(ctx context.Context, actor domain.Actor) ([]domain.AttendanceEntry, error) {
	day := a.timeService.GetTodayRange()
	return a.list(ctx, actor.UserID, &day.Start, &day.End)
}

// MonthlyReport classifies every day of a month for a user in the actor's organization
func (a *attendanceServiceImpl) MonthlyReport(ctx context.Context, actor domain.Actor, userID int64, year int, month time.Month) (*MonthlyAttendance, error) {
	if month < time.January || month > time.December {
		return nil, errors.NewInvalidInputError("month", int(month), "must be between 1 and 12")
	}
	if err := newScope(a.repo, a.guard).CheckUserVisible(ctx, actor, userID); err != nil {
		return nil, err
	}

	span := a.timeService.GetMonthRange(year, month)
	entries, err := a.list(ctx, userID, &span.Start, &span.End)
	if err != nil {
		return nil, err
	}

	report := &MonthlyAttendance{
		UserID: userID,
		Year:   year,
		Month:  month,
		Days:   domain.ClassifyMonth(year, month, entries, a.timeService.Now(), a.timeService.Location()),
	}
	for _, day := range report.Days {
		switch day.Class {
		case domain.DayPresent:
			report.Present++
		case domain.DayAbsent:
			report.Absent++
		}
	}
	return report, nil
}

func (a *attendanceServiceImpl) list(ctx context.Context, userID int64, from, to *time.Time) ([]domain.AttendanceEntry, error) {
	rows, err := a.repo.ListAttendanceEntries(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return a.mapper.Attendance.FromDatabaseSlice(rows), nil
}

func entryLabel(t domain.EntryType) string {
	if t == domain.EntryClockIn {
		return "clock in"
	}
	return "clock out"
}

// userLocks hands out one mutex per user
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the user's mutex and returns its release
func (l *userLocks) lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
