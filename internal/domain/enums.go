package domain

import "strings"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "TO_DO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusInReview   TaskStatus = "IN_REVIEW"
	StatusDone       TaskStatus = "DONE"
	StatusChecked    TaskStatus = "CHECKED"
	StatusOnHold     TaskStatus = "ON_HOLD"
)

var taskStatuses = map[TaskStatus]string{
	StatusToDo:       "To Do",
	StatusInProgress: "In Progress",
	StatusInReview:   "In Review",
	StatusDone:       "Done",
	StatusChecked:    "Checked",
	StatusOnHold:     "On Hold",
}

// TaskStatuses lists every status in lifecycle order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusToDo, StatusInProgress, StatusInReview, StatusDone, StatusChecked, StatusOnHold}
}

// ParseTaskStatus parses the canonical upper-case name of a status.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	status := TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := taskStatuses[status]
	return status, ok
}

// IsValid reports whether s is one of the closed set of statuses.
func (s TaskStatus) IsValid() bool {
	_, ok := taskStatuses[s]
	return ok
}

// IsCompleted reports whether the task has left the active worklists.
func (s TaskStatus) IsCompleted() bool {
	return s == StatusDone || s == StatusChecked
}

// DisplayName returns the human readable label.
func (s TaskStatus) DisplayName() string {
	return taskStatuses[s]
}

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// DefaultPriority is applied when a task is created without one.
const DefaultPriority = PriorityMedium

var priorities = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

// ParsePriority parses the canonical upper-case name of a priority.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := priorities[p]
	return p, ok
}

func (p Priority) IsValid() bool {
	_, ok := priorities[p]
	return ok
}

func (p Priority) DisplayName() string {
	return priorities[p]
}

// ProjectStage marks the project phase a task belongs to. It is independent of status.
type ProjectStage string

const (
	StagePreparationBrief  ProjectStage = "STAGE_01_PREPARATION_BRIEF"
	StageConceptDesign     ProjectStage = "STAGE_02_CONCEPT_DESIGN"
	StageDesignDevelopment ProjectStage = "STAGE_03_DESIGN_DEVELOPMENT"
	StageTechnicalDesign   ProjectStage = "STAGE_04_TECHNICAL_DESIGN"
	StageConstruction      ProjectStage = "STAGE_05_CONSTRUCTION"
	StageHandover          ProjectStage = "STAGE_06_HANDOVER"
	StageUse               ProjectStage = "STAGE_07_USE"
)

var projectStages = []struct {
	stage   ProjectStage
	short   string
	display string
}{
	{StagePreparationBrief, "STAGE_01", "Stage 01: Preparation & Brief"},
	{StageConceptDesign, "STAGE_02", "Stage 02: Concept Design"},
	{StageDesignDevelopment, "STAGE_03", "Stage 03: Design Development"},
	{StageTechnicalDesign, "STAGE_04", "Stage 04: Technical Design"},
	{StageConstruction, "STAGE_05", "Stage 05: Construction"},
	{StageHandover, "STAGE_06", "Stage 06: Handover"},
	{StageUse, "STAGE_07", "Stage 07: Use"},
}

// ParseProjectStage accepts either the full stage name or its STAGE_NN short form.
func ParseProjectStage(s string) (ProjectStage, bool) {
	value := strings.ToUpper(strings.TrimSpace(s))
	for _, ps := range projectStages {
		if value == string(ps.stage) || value == ps.short {
			return ps.stage, true
		}
	}
	return "", false
}

func (ps ProjectStage) IsValid() bool {
	for _, s := range projectStages {
		if s.stage == ps {
			return true
		}
	}
	return false
}

func (ps ProjectStage) DisplayName() string {
	for _, s := range projectStages {
		if s.stage == ps {
			return s.display
		}
	}
	return ""
}

// EntryType distinguishes the two attendance events.
type EntryType string

const (
	EntryClockIn  EntryType = "CLOCK_IN"
	EntryClockOut EntryType = "CLOCK_OUT"
)

