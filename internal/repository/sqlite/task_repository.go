package sqlite

import (
	"context"
	"fmt"
	"strings"
)

// Tasks are scoped through their reporter: the reporter always belongs to the task's organization.
const taskScopeJoin = `
	FROM tasks t
	JOIN users r ON r.id = t.reporter_id`

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `
	INSERT INTO tasks (name, description, status, priority, due_date, project_stage,
		project_id, reporter_id, assignee_id, checker_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.Name,
		nullableString(task.Description),
		task.Status,
		task.Priority,
		FormatDatePtrForDB(task.DueDate),
		task.ProjectStage,
		nullableInt64(task.ProjectID),
		task.ReporterID,
		nullableInt64(task.AssigneeID),
		nullableInt64(task.CheckerID),
		FormatTimeForDB(task.CreatedAt),
		FormatTimeForDB(task.UpdatedAt),
	)
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID within an organization
func (r *SQLiteRepository) GetTask(ctx context.Context, orgID, id int64) (*Task, error) {
	query := `SELECT ` + taskColumns + taskScopeJoin + `
	WHERE t.id = ? AND r.organization_id = ?`

	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id, orgID)
}

// UpdateTask writes every mutable column. Reporter, project and creation time never change.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	query := `
	UPDATE tasks
	SET name = ?, description = ?, status = ?, priority = ?, due_date = ?, project_stage = ?,
		assignee_id = ?, checker_id = ?, updated_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", task.ID),
		task.Name,
		nullableString(task.Description),
		task.Status,
		task.Priority,
		FormatDatePtrForDB(task.DueDate),
		task.ProjectStage,
		nullableInt64(task.AssigneeID),
		nullableInt64(task.CheckerID),
		FormatTimeForDB(task.UpdatedAt),
		task.ID,
	)
}

// DeleteTask hard-deletes a task visible to the organization. Time logs are left untouched.
func (r *SQLiteRepository) DeleteTask(ctx context.Context, orgID, id int64) (bool, error) {
	query := `
	DELETE FROM tasks
	WHERE id = ? AND reporter_id IN (SELECT id FROM users WHERE organization_id = ?)`

	result, err := r.db.ExecContext(ctx, query, id, orgID)
	if err != nil {
		return false, HandleDatabaseError("delete task", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, HandleDatabaseError("get rows affected", err)
	}
	return rows > 0, nil
}

// SearchTasks lists tasks matching opts, newest first
func (r *SQLiteRepository) SearchTasks(ctx context.Context, opts TaskSearchOptions) ([]*Task, error) {
	where, args := buildTaskConditions(opts)

	query := `SELECT ` + taskColumns + taskScopeJoin + where + `
	ORDER BY t.created_at DESC, t.id DESC`
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
}

// CountTasks counts tasks matching opts, ignoring Limit and Offset
func (r *SQLiteRepository) CountTasks(ctx context.Context, opts TaskSearchOptions) (int, error) {
	where, args := buildTaskConditions(opts)
	query := `SELECT COUNT(*)` + taskScopeJoin + where
	return QueryCount(ctx, r.db, query, "tasks", args...)
}

func buildTaskConditions(opts TaskSearchOptions) (string, []interface{}) {
	conditions := []string{"r.organization_id = ?"}
	args := []interface{}{opts.OrganizationID}

	if opts.ProjectID != nil {
		conditions = append(conditions, "t.project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.AssigneeID != nil {
		conditions = append(conditions, "t.assignee_id = ?")
		args = append(args, *opts.AssigneeID)
	}
	if opts.ReporterID != nil {
		conditions = append(conditions, "t.reporter_id = ?")
		args = append(args, *opts.ReporterID)
	}
	if opts.CheckerID != nil {
		conditions = append(conditions, "t.checker_id = ?")
		args = append(args, *opts.CheckerID)
	}
	if len(opts.ExcludeStatuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(opts.ExcludeStatuses)), ",")
		conditions = append(conditions, "t.status NOT IN ("+placeholders+")")
		for _, s := range opts.ExcludeStatuses {
			args = append(args, s)
		}
	}

	return "\n\tWHERE " + strings.Join(conditions, " AND "), args
}
