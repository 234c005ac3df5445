package domain

import (
	"work-tracker/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(t Task) sqlite.Task {
	return sqlite.Task{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		DueDate:      t.DueDate,
		ProjectStage: string(t.ProjectStage),
		ProjectID:    t.ProjectID,
		ReporterID:   t.ReporterID,
		AssigneeID:   t.AssigneeID,
		CheckerID:    t.CheckerID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(row sqlite.Task) Task {
	return Task{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		Status:       TaskStatus(row.Status),
		Priority:     Priority(row.Priority),
		DueDate:      row.DueDate,
		ProjectStage: ProjectStage(row.ProjectStage),
		ProjectID:    row.ProjectID,
		ReporterID:   row.ReporterID,
		AssigneeID:   row.AssigneeID,
		CheckerID:    row.CheckerID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(rows []*sqlite.Task) []Task {
	tasks := make([]Task, len(rows))
	for i, row := range rows {
		tasks[i] = m.FromDatabase(*row)
	}
	return tasks
}

// TimeLogMapper handles conversion between domain and database TimeLog models.
type TimeLogMapper struct{}

// NewTimeLogMapper creates a new TimeLogMapper instance.
func NewTimeLogMapper() *TimeLogMapper {
	return &TimeLogMapper{}
}

// ToDatabase converts a domain TimeLog to a database TimeLog.
func (m *TimeLogMapper) ToDatabase(tl TimeLog) sqlite.TimeLog {
	return sqlite.TimeLog{
		ID:              tl.ID,
		TaskID:          tl.TaskID,
		UserID:          tl.UserID,
		DateLogged:      tl.DateLogged,
		HoursLogged:     tl.HoursLogged,
		WorkDescription: tl.WorkDescription,
		CreatedAt:       tl.CreatedAt,
	}
}

// FromDatabase converts a database TimeLog to a domain TimeLog.
func (m *TimeLogMapper) FromDatabase(row sqlite.TimeLog) TimeLog {
	return TimeLog{
		ID:              row.ID,
		TaskID:          row.TaskID,
		UserID:          row.UserID,
		DateLogged:      row.DateLogged,
		HoursLogged:     row.HoursLogged,
		WorkDescription: row.WorkDescription,
		CreatedAt:       row.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database TimeLogs to domain TimeLogs.
func (m *TimeLogMapper) FromDatabaseSlice(rows []*sqlite.TimeLog) []TimeLog {
	logs := make([]TimeLog, len(rows))
	for i, row := range rows {
		logs[i] = m.FromDatabase(*row)
	}
	return logs
}

// AttendanceMapper handles conversion between domain and database attendance entries.
type AttendanceMapper struct{}

func NewAttendanceMapper() *AttendanceMapper {
	return &AttendanceMapper{}
}

func (m *AttendanceMapper) ToDatabase(e AttendanceEntry) sqlite.AttendanceEntry {
	return sqlite.AttendanceEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		EntryType: string(e.EntryType),
		Timestamp: e.Timestamp,
		Notes:     e.Notes,
	}
}

func (m *AttendanceMapper) FromDatabase(row sqlite.AttendanceEntry) AttendanceEntry {
	return AttendanceEntry{
		ID:        row.ID,
		UserID:    row.UserID,
		EntryType: EntryType(row.EntryType),
		Timestamp: row.Timestamp,
		Notes:     row.Notes,
	}
}

// FromDatabasePtr converts an optional row; nil maps to nil.
func (m *AttendanceMapper) FromDatabasePtr(row *sqlite.AttendanceEntry) *AttendanceEntry {
	if row == nil {
		return nil
	}
	e := m.FromDatabase(*row)
	return &e
}

func (m *AttendanceMapper) FromDatabaseSlice(rows []*sqlite.AttendanceEntry) []AttendanceEntry {
	entries := make([]AttendanceEntry, len(rows))
	for i, row := range rows {
		entries[i] = m.FromDatabase(*row)
	}
	return entries
}

// DirectoryMapper converts organizations, users and projects.
type DirectoryMapper struct{}

func NewDirectoryMapper() *DirectoryMapper {
	return &DirectoryMapper{}
}

func (m *DirectoryMapper) UserFromDatabase(row sqlite.User) User {
	return User{
		ID:             row.ID,
		Username:       row.Username,
		DisplayName:    row.DisplayName,
		OrganizationID: row.OrganizationID,
	}
}

func (m *DirectoryMapper) OrganizationFromDatabase(row sqlite.Organization) Organization {
	return Organization{ID: row.ID, Name: row.Name}
}

func (m *DirectoryMapper) ProjectFromDatabase(row sqlite.Project) Project {
	return Project{ID: row.ID, Name: row.Name, OrganizationID: row.OrganizationID}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task       *TaskMapper
	TimeLog    *TimeLogMapper
	Attendance *AttendanceMapper
	Directory  *DirectoryMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:       NewTaskMapper(),
		TimeLog:    NewTimeLogMapper(),
		Attendance: NewAttendanceMapper(),
		Directory:  NewDirectoryMapper(),
	}
}
