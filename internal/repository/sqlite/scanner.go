package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanAll drains rows through scanOne.
func scanAll[T any](rows Rows, scanOne func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

const taskColumns = `t.id, t.name, t.description, t.status, t.priority, t.due_date, t.project_stage,
	t.project_id, t.reporter_id, t.assignee_id, t.checker_id, t.created_at, t.updated_at`

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var (
		description sql.NullString
		dueDate     sql.NullString
		projectID   sql.NullInt64
		assigneeID  sql.NullInt64
		checkerID   sql.NullInt64
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&task.ID,
		&task.Name,
		&description,
		&task.Status,
		&task.Priority,
		&dueDate,
		&task.ProjectStage,
		&projectID,
		&task.ReporterID,
		&assigneeID,
		&checkerID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.ProjectID = int64Ptr(projectID)
	task.AssigneeID = int64Ptr(assigneeID)
	task.CheckerID = int64Ptr(checkerID)

	if dueDate.Valid {
		d, err := ParseDateFromDB(dueDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse due_date: %w", err)
		}
		task.DueDate = &d
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if task.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	return scanAll(rows, ScanTask)
}

const timeLogColumns = `l.id, l.task_id, l.user_id, l.date_logged, l.hours_logged, l.work_description, l.created_at`

// ScanTimeLog scans a single time log from a database row
func ScanTimeLog(scanner Scanner) (*TimeLog, error) {
	log := &TimeLog{}
	var dateLogged, createdAt string

	err := scanner.Scan(
		&log.ID,
		&log.TaskID,
		&log.UserID,
		&dateLogged,
		&log.HoursLogged,
		&log.WorkDescription,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if log.DateLogged, err = ParseDateFromDB(dateLogged); err != nil {
		return nil, fmt.Errorf("parse date_logged: %w", err)
	}
	if log.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return log, nil
}

// ScanTimeLogs scans multiple time logs from database rows
func ScanTimeLogs(rows Rows) ([]*TimeLog, error) {
	return scanAll(rows, ScanTimeLog)
}

const attendanceColumns = `id, user_id, entry_type, timestamp, notes`

// ScanAttendanceEntry scans a single attendance entry from a database row
func ScanAttendanceEntry(scanner Scanner) (*AttendanceEntry, error) {
	entry := &AttendanceEntry{}
	var (
		timestamp string
		notes     sql.NullString
	)

	if err := scanner.Scan(&entry.ID, &entry.UserID, &entry.EntryType, &timestamp, &notes); err != nil {
		return nil, err
	}

	ts, err := ParseTimeFromDB(timestamp)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp: %w", err)
	}
	entry.Timestamp = ts
	entry.Notes = notes.String

	return entry, nil
}

// ScanAttendanceEntries scans multiple attendance entries from database rows
func ScanAttendanceEntries(rows Rows) ([]*AttendanceEntry, error) {
	return scanAll(rows, ScanAttendanceEntry)
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	var (
		displayName sql.NullString
		orgID       sql.NullInt64
	)
	if err := scanner.Scan(&user.ID, &user.Username, &displayName, &orgID); err != nil {
		return nil, err
	}
	user.DisplayName = displayName.String
	user.OrganizationID = int64Ptr(orgID)
	return user, nil
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	if err := scanner.Scan(&project.ID, &project.Name, &project.OrganizationID); err != nil {
		return nil, err
	}
	return project, nil
}

// ScanOrganization scans a single organization from a database row
func ScanOrganization(scanner Scanner) (*Organization, error) {
	org := &Organization{}
	if err := scanner.Scan(&org.ID, &org.Name); err != nil {
		return nil, err
	}
	return org, nil
}
