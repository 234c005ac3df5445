package sqlite

import (
	"context"
	"fmt"
	"strings"
)

// CreateTimeLog creates a new time log
func (r *SQLiteRepository) CreateTimeLog(ctx context.Context, log *TimeLog) error {
	query := `
	INSERT INTO time_logs (task_id, user_id, date_logged, hours_logged, work_description, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		log.TaskID,
		log.UserID,
		FormatDateForDB(log.DateLogged),
		FormatHoursForDB(log.HoursLogged),
		log.WorkDescription,
		FormatTimeForDB(log.CreatedAt),
	)
	if err != nil {
		return err
	}

	log.ID = id
	return nil
}

// GetTimeLog retrieves a time log by ID
func (r *SQLiteRepository) GetTimeLog(ctx context.Context, id int64) (*TimeLog, error) {
	query := `SELECT ` + timeLogColumns + ` FROM time_logs l WHERE l.id = ?`
	return QuerySingle(ctx, r.db, query, ScanTimeLog, "time log", fmt.Sprintf("%d", id), id)
}

// UpdateTimeLog updates the editable fields of a time log
func (r *SQLiteRepository) UpdateTimeLog(ctx context.Context, log *TimeLog) error {
	query := `
	UPDATE time_logs
	SET date_logged = ?, hours_logged = ?, work_description = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "time log", fmt.Sprintf("%d", log.ID),
		FormatDateForDB(log.DateLogged),
		FormatHoursForDB(log.HoursLogged),
		log.WorkDescription,
		log.ID,
	)
}

// DeleteTimeLog deletes a time log by ID
func (r *SQLiteRepository) DeleteTimeLog(ctx context.Context, id int64) error {
	query := `DELETE FROM time_logs WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time log", fmt.Sprintf("%d", id), id)
}

// SearchTimeLogs lists time logs matching opts, most recent work date first
func (r *SQLiteRepository) SearchTimeLogs(ctx context.Context, opts TimeLogSearchOptions) ([]*TimeLog, error) {
	var conditions []string
	var args []interface{}

	if opts.TaskID != nil {
		conditions = append(conditions, "l.task_id = ?")
		args = append(args, *opts.TaskID)
	}
	if opts.UserID != nil {
		conditions = append(conditions, "l.user_id = ?")
		args = append(args, *opts.UserID)
	}
	if opts.From != nil {
		conditions = append(conditions, "l.date_logged >= ?")
		args = append(args, FormatDateForDB(*opts.From))
	}
	if opts.To != nil {
		conditions = append(conditions, "l.date_logged <= ?")
		args = append(args, FormatDateForDB(*opts.To))
	}

	query := `SELECT ` + timeLogColumns + ` FROM time_logs l`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY l.date_logged DESC, l.id DESC"

	return QueryMultiple(ctx, r.db, query, ScanTimeLogs, "time logs", args...)
}
