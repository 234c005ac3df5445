package domain

import (
	"time"
)

// Task represents a unit of work in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID           int64
	Name         string
	Description  string
	Status       TaskStatus
	Priority     Priority
	DueDate      *time.Time
	ProjectStage ProjectStage
	ProjectID    *int64
	ReporterID   int64
	AssigneeID   *int64
	CheckerID    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTask creates a task in its initial state for the given reporter.
func NewTask(name string, stage ProjectStage, reporterID int64) Task {
	return Task{
		Name:         name,
		Status:       StatusToDo,
		Priority:     DefaultPriority,
		ProjectStage: stage,
		ReporterID:   reporterID,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Name != "" && t.Status.IsValid() && t.Priority.IsValid() &&
		t.ProjectStage.IsValid() && t.ReporterID > 0
}

// IsStandalone reports whether the task is not attached to a project.
func (t Task) IsStandalone() bool {
	return t.ProjectID == nil
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}
