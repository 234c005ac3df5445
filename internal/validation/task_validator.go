package validation

import (
	"work-tracker/internal/domain"
)

// TaskFields holds the cleaned and parsed values of a task form
type TaskFields struct {
	Name         string
	Description  string
	ProjectStage domain.ProjectStage
	Status       domain.TaskStatus
	Priority     domain.Priority
}

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return NewTaskValidatorWith(NewValidator())
}

// NewTaskValidatorWith creates a task validator sharing v's configuration
func NewTaskValidatorWith(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

// ValidateForCreation validates a new task's fields. The status is always TO_DO
// and an empty priority falls back to the default.
func (tv *TaskValidator) ValidateForCreation(name, description, stage, priority string) (TaskFields, error) {
	validationError := NewValidationError()
	fields := TaskFields{
		Name:        tv.validator.TrimAndValidateString(name),
		Description: tv.validator.TrimAndValidateString(description),
		Status:      domain.StatusToDo,
		Priority:    domain.DefaultPriority,
	}

	tv.checkName(validationError, name)
	tv.checkDescription(validationError, description)
	fields.ProjectStage = tv.parseStage(validationError, stage)
	if tv.validator.IsNonEmptyString(priority) {
		fields.Priority = tv.parsePriority(validationError, priority)
	}

	return fields, validationError.Err()
}

// ValidateForUpdate validates a full-field task update. Every enum must parse
// or the whole update is rejected.
func (tv *TaskValidator) ValidateForUpdate(name, description, stage, status, priority string) (TaskFields, error) {
	validationError := NewValidationError()
	fields := TaskFields{
		Name:        tv.validator.TrimAndValidateString(name),
		Description: tv.validator.TrimAndValidateString(description),
	}

	tv.checkName(validationError, name)
	tv.checkDescription(validationError, description)
	fields.ProjectStage = tv.parseStage(validationError, stage)
	fields.Status = tv.parseStatus(validationError, status)
	fields.Priority = tv.parsePriority(validationError, priority)

	return fields, validationError.Err()
}

// ValidateStatus parses a status for a status-only transition
func (tv *TaskValidator) ValidateStatus(status string) (domain.TaskStatus, error) {
	validationError := NewValidationError()
	s := tv.parseStatus(validationError, status)
	return s, validationError.Err()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

func (tv *TaskValidator) checkName(ve *ValidationError, name string) {
	trimmed := tv.validator.TrimAndValidateString(name)
	if !tv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError("name")
		return
	}
	if limit := tv.validator.TaskNameMaxLength(); !tv.validator.IsWithinLength(trimmed, limit) {
		ve.AddInvalidLengthError("name", trimmed, 0, limit)
	}
}

func (tv *TaskValidator) checkDescription(ve *ValidationError, description string) {
	if limit := tv.validator.DescriptionMaxLength(); !tv.validator.IsWithinLength(description, limit) {
		ve.AddInvalidLengthError("description", nil, 0, limit)
	}
}

func (tv *TaskValidator) parseStage(ve *ValidationError, stage string) domain.ProjectStage {
	if !tv.validator.IsNonEmptyString(stage) {
		ve.AddRequiredError("project_stage")
		return ""
	}
	ps, ok := domain.ParseProjectStage(stage)
	if !ok {
		ve.AddInvalidValueError("project_stage", stage, "unknown project stage")
	}
	return ps
}

func (tv *TaskValidator) parseStatus(ve *ValidationError, status string) domain.TaskStatus {
	if !tv.validator.IsNonEmptyString(status) {
		ve.AddRequiredError("status")
		return ""
	}
	s, ok := domain.ParseTaskStatus(status)
	if !ok {
		ve.AddInvalidValueError("status", status, "unknown task status")
		return ""
	}
	return s
}

func (tv *TaskValidator) parsePriority(ve *ValidationError, priority string) domain.Priority {
	if !tv.validator.IsNonEmptyString(priority) {
		ve.AddRequiredError("priority")
		return ""
	}
	p, ok := domain.ParsePriority(priority)
	if !ok {
		ve.AddInvalidValueError("priority", priority, "unknown priority")
		return ""
	}
	return p
}
