package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// EnsureStandaloneTasks makes tasks.project_id nullable on databases created by
// releases that required a project for every task. It is best effort: failures are
// logged and startup continues.
func EnsureStandaloneTasks(ctx context.Context, db *sql.DB, logger logrus.FieldLogger) {
	log := logger.WithField("step", "ensure_standalone_tasks")

	notNull, err := projectIDIsNotNull(ctx, db)
	if err != nil {
		log.WithError(err).Warn("could not inspect tasks schema, continuing")
		return
	}
	if !notNull {
		log.Debug("tasks.project_id already nullable")
		return
	}

	if err := rebuildTasksTable(ctx, db); err != nil {
		log.WithError(err).Warn("could not make tasks.project_id nullable, standalone tasks will be rejected by the database")
		return
	}
	log.Info("tasks.project_id is now nullable")
}

func projectIDIsNotNull(ctx context.Context, db *sql.DB) (bool, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info(tasks)")
	if err != nil {
		return false, err
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == "project_id" {
			found = true
			if notNull == 1 {
				return true, rows.Err()
			}
		}
	}
	if err := rows.Err(); err != nil {
		return false, err
	}
	if !found {
		return false, fmt.Errorf("tasks table has no project_id column")
	}
	return false, nil
}

// rebuildTasksTable recreates tasks with the current definition and copies every row.
// SQLite cannot drop a NOT NULL constraint in place. legacy_alter_table keeps the
// rename from rewriting the time_logs reference to the old table.
func rebuildTasksTable(ctx context.Context, db *sql.DB) error {
	createSQL, err := migrationsFS.ReadFile("000002_create_tasks.up.sql")
	if err != nil {
		return err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "PRAGMA legacy_alter_table = ON"); err != nil {
		return err
	}
	defer conn.ExecContext(context.Background(), "PRAGMA legacy_alter_table = OFF")

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	indexes, err := userIndexes(ctx, tx, "tasks")
	if err != nil {
		return err
	}
	for _, idx := range indexes {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP INDEX %q", idx)); err != nil {
			return fmt.Errorf("drop index %s: %w", idx, err)
		}
	}

	steps := []string{
		"ALTER TABLE tasks RENAME TO tasks_legacy",
		string(createSQL),
		`INSERT INTO tasks (id, name, description, status, priority, due_date, project_stage,
			project_id, reporter_id, assignee_id, checker_id, created_at, updated_at)
		SELECT id, name, description, status, priority, due_date, project_stage,
			project_id, reporter_id, assignee_id, checker_id, created_at, updated_at
		FROM tasks_legacy`,
		"DROP TABLE tasks_legacy",
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func userIndexes(ctx context.Context, tx *sql.Tx, table string) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND sql IS NOT NULL", table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
