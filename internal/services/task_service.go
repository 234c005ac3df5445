package services

import (
	"context"
	"fmt"
	"time"

	"work-tracker/internal/authz"
	"work-tracker/internal/domain"
	"work-tracker/internal/errors"
	"work-tracker/internal/metrics"
	"work-tracker/internal/repository/sqlite"
	"work-tracker/internal/validation"

	"github.com/sirupsen/logrus"
)

// activeExclusions drops finished work from the assignee and reporter worklists
var activeExclusions = completedStatuses()

func completedStatuses() []string {
	var statuses []string
	for _, s := range domain.TaskStatuses() {
		if s.IsCompleted() {
			statuses = append(statuses, string(s))
		}
	}
	return statuses
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	timeService   TimeService
	guard         *authz.Guard
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	logger        logrus.FieldLogger
	metrics       *metrics.Metrics
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, timeService TimeService, guard *authz.Guard,
	v *validation.Validator, logger logrus.FieldLogger, m *metrics.Metrics) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		timeService:   timeService,
		guard:         guard,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidatorWith(v),
		logger:        logger.WithField("component", "task_service"),
		metrics:       m,
	}
}

// CreateTask creates a task reported by the actor. Status starts at TO_DO and
// every referenced project and user must belong to the actor's organization.
func (t *taskServiceImpl) CreateTask(ctx context.Context, actor domain.Actor, in CreateTaskInput) (*domain.Task, error) {
	fields, err := t.taskValidator.ValidateForCreation(in.Name, in.Description, in.ProjectStage, in.Priority)
	if err != nil {
		return nil, validation.ToInvalidArgument("invalid task", err)
	}

	task := domain.NewTask(fields.Name, fields.ProjectStage, actor.UserID)
	task.Description = fields.Description
	task.Priority = fields.Priority
	task.DueDate = datePtr(in.DueDate)
	task.ProjectID = in.ProjectID
	task.AssigneeID = in.AssigneeID
	task.CheckerID = in.CheckerID

	err = t.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		if err := newScope(tx, t.guard).CheckReferences(ctx, actor, in.ProjectID, in.AssigneeID, in.CheckerID); err != nil {
			return err
		}

		now := t.timeService.Now()
		task.CreatedAt = now
		task.UpdatedAt = now

		row := t.mapper.Task.ToDatabase(task)
		if err := tx.CreateTask(ctx, &row); err != nil {
			return err
		}
		task.ID = row.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.metrics.TaskOperation("create")
	t.logger.WithFields(logrus.Fields{
		"task_id":    task.ID,
		"user_id":    actor.UserID,
		"standalone": task.IsStandalone(),
		"to":         task.Status,
	}).Info("task created")
	return &task, nil
}

// GetTask retrieves a task visible to the actor
func (t *taskServiceImpl) GetTask(ctx context.Context, actor domain.Actor, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, validation.ToInvalidArgument("invalid task ID", err)
	}
	task, err := t.loadTask(ctx, t.repo, actor, id)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskFields replaces every editable field of a task. The task must be
// visible, the actor must hold a role on it, and the whole input must be valid
// before anything is written.
func (t *taskServiceImpl) UpdateTaskFields(ctx context.Context, actor domain.Actor, id int64, in UpdateTaskInput) (*domain.Task, error) {
	fields, validationErr := t.taskValidator.ValidateForUpdate(in.Name, in.Description, in.ProjectStage, in.Status, in.Priority)

	var updated domain.Task
	var from domain.TaskStatus
	err := t.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		task, err := t.loadTask(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if err := t.guard.AuthorizeEdit(actor, task, "update"); err != nil {
			return err
		}
		if validationErr != nil {
			return validation.ToInvalidArgument("invalid task", validationErr)
		}
		if err := newScope(tx, t.guard).CheckReferences(ctx, actor, nil, in.AssigneeID, in.CheckerID); err != nil {
			return err
		}

		from = task.Status
		task.Name = fields.Name
		task.Description = fields.Description
		task.ProjectStage = fields.ProjectStage
		task.Status = fields.Status
		task.Priority = fields.Priority
		task.DueDate = datePtr(in.DueDate)
		task.AssigneeID = in.AssigneeID
		task.CheckerID = in.CheckerID

		updated, err = t.save(ctx, tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.recordTransition("update", actor, updated, from)
	return &updated, nil
}

// SetStatus moves a task to any status. Only role holders may do it.
func (t *taskServiceImpl) SetStatus(ctx context.Context, actor domain.Actor, id int64, status string) (*domain.Task, error) {
	newStatus, validationErr := t.taskValidator.ValidateStatus(status)

	var updated domain.Task
	var from domain.TaskStatus
	err := t.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		task, err := t.loadTask(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if err := t.guard.AuthorizeEdit(actor, task, "set_status"); err != nil {
			return err
		}
		if validationErr != nil {
			return validation.ToInvalidArgument("invalid status", validationErr)
		}

		from = task.Status
		task.Status = newStatus
		updated, err = t.save(ctx, tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.recordTransition("set_status", actor, updated, from)
	return &updated, nil
}

// MarkCompletedAndChecked moves a DONE task to CHECKED. Only the task's
// checker may do it; a task that is not DONE fails InvalidState for anyone.
func (t *taskServiceImpl) MarkCompletedAndChecked(ctx context.Context, actor domain.Actor, id int64) (*domain.Task, error) {
	var updated domain.Task
	var from domain.TaskStatus
	err := t.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		task, err := t.loadTask(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if task.Status != domain.StatusDone {
			return errors.NewInvalidStateError(
				fmt.Sprintf("task %d must be %s to be checked, current status is %s", task.ID, domain.StatusDone, task.Status))
		}
		if err := t.guard.AuthorizeCheck(actor, task); err != nil {
			return err
		}

		from = task.Status
		task.Status = domain.StatusChecked
		updated, err = t.save(ctx, tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.recordTransition("check", actor, updated, from)
	return &updated, nil
}

// DeleteTask hard-deletes a task in the actor's organization. It reports false
// when no visible task has the id. Time logs of the task are kept.
func (t *taskServiceImpl) DeleteTask(ctx context.Context, actor domain.Actor, id int64) (bool, error) {
	if !actor.HasOrganization() {
		return false, nil
	}

	var deleted bool
	err := t.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		var err error
		deleted, err = tx.DeleteTask(ctx, *actor.OrganizationID, id)
		return err
	})
	if err != nil {
		return false, err
	}

	if deleted {
		t.metrics.TaskOperation("delete")
		t.logger.WithFields(logrus.Fields{"task_id": id, "user_id": actor.UserID}).Info("task deleted")
	}
	return deleted, nil
}

// ListProjectTasks lists every task of a project in the actor's organization
func (t *taskServiceImpl) ListProjectTasks(ctx context.Context, actor domain.Actor, projectID int64, page domain.PageRequest) (domain.Page[domain.Task], error) {
	if err := newScope(t.repo, t.guard).CheckReferences(ctx, actor, &projectID); err != nil {
		return domain.Page[domain.Task]{}, err
	}
	return t.listTasks(ctx, actor, sqlite.TaskSearchOptions{ProjectID: &projectID}, page)
}

// ListAssignedTasks lists the actor's active assignments
func (t *taskServiceImpl) ListAssignedTasks(ctx context.Context, actor domain.Actor, page domain.PageRequest) (domain.Page[domain.Task], error) {
	return t.listTasks(ctx, actor, sqlite.TaskSearchOptions{
		AssigneeID:      &actor.UserID,
		ExcludeStatuses: activeExclusions,
	}, page)
}

// ListReportedTasks lists the active tasks the actor reported
func (t *taskServiceImpl) ListReportedTasks(ctx context.Context, actor domain.Actor, page domain.PageRequest) (domain.Page[domain.Task], error) {
	return t.listTasks(ctx, actor, sqlite.TaskSearchOptions{
		ReporterID:      &actor.UserID,
		ExcludeStatuses: activeExclusions,
	}, page)
}

// ListCheckingTasks lists every task the actor checks, finished ones included
func (t *taskServiceImpl) ListCheckingTasks(ctx context.Context, actor domain.Actor, page domain.PageRequest) (domain.Page[domain.Task], error) {
	return t.listTasks(ctx, actor, sqlite.TaskSearchOptions{CheckerID: &actor.UserID}, page)
}

// listTasks runs a scoped, paginated search. An actor without an organization sees an empty page.
func (t *taskServiceImpl) listTasks(ctx context.Context, actor domain.Actor, opts sqlite.TaskSearchOptions, page domain.PageRequest) (domain.Page[domain.Task], error) {
	page = page.Normalize()
	if !actor.HasOrganization() {
		return domain.NewPage[domain.Task](nil, page, 0), nil
	}

	opts.OrganizationID = *actor.OrganizationID
	total, err := t.repo.CountTasks(ctx, opts)
	if err != nil {
		return domain.Page[domain.Task]{}, err
	}

	opts.Limit = page.Size
	opts.Offset = page.Offset()
	rows, err := t.repo.SearchTasks(ctx, opts)
	if err != nil {
		return domain.Page[domain.Task]{}, err
	}

	return domain.NewPage(t.mapper.Task.FromDatabaseSlice(rows), page, total), nil
}

// loadTask fetches a task through repo, scoped to the actor's organization
func (t *taskServiceImpl) loadTask(ctx context.Context, repo sqlite.Repository, actor domain.Actor, id int64) (domain.Task, error) {
	orgID, err := newScope(repo, t.guard).OrganizationOf(actor)
	if err != nil {
		return domain.Task{}, err
	}
	row, err := repo.GetTask(ctx, orgID, id)
	if err != nil {
		return domain.Task{}, err
	}
	return t.mapper.Task.FromDatabase(*row), nil
}

// save bumps updatedAt and writes every mutable column
func (t *taskServiceImpl) save(ctx context.Context, repo sqlite.Repository, task domain.Task) (domain.Task, error) {
	task.UpdatedAt = t.timeService.Now()
	row := t.mapper.Task.ToDatabase(task)
	if err := repo.UpdateTask(ctx, &row); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (t *taskServiceImpl) recordTransition(operation string, actor domain.Actor, task domain.Task, from domain.TaskStatus) {
	t.metrics.TaskOperation(operation)
	t.logger.WithFields(logrus.Fields{
		"operation": operation,
		"task_id":   task.ID,
		"user_id":   actor.UserID,
		"from":      from,
		"to":        task.Status,
	}).Info("task updated")
}

func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateOf(*t)
	return &d
}
