package sqlite

import (
	"context"
	"time"
)

// CreateAttendanceEntry appends an attendance entry
func (r *SQLiteRepository) CreateAttendanceEntry(ctx context.Context, entry *AttendanceEntry) error {
	query := `
	INSERT INTO attendance_entries (user_id, entry_type, timestamp, notes)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		entry.UserID,
		entry.EntryType,
		FormatTimeForDB(entry.Timestamp),
		nullableString(entry.Notes),
	)
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// GetLatestAttendanceEntry returns the user's most recent entry, or nil when there is none.
// Entries sharing a second are ordered by insertion.
func (r *SQLiteRepository) GetLatestAttendanceEntry(ctx context.Context, userID int64) (*AttendanceEntry, error) {
	query := `SELECT ` + attendanceColumns + `
	FROM attendance_entries
	WHERE user_id = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1`

	return QueryOptional(ctx, r.db, query, ScanAttendanceEntry, "attendance entry", userID)
}

// ListAttendanceEntries lists a user's entries in [from, to), most recent first.
// A nil bound leaves that side open.
func (r *SQLiteRepository) ListAttendanceEntries(ctx context.Context, userID int64, from, to *time.Time) ([]*AttendanceEntry, error) {
	query := `SELECT ` + attendanceColumns + `
	FROM attendance_entries
	WHERE user_id = ?`
	args := []interface{}{userID}

	if from != nil {
		query += " AND timestamp >= ?"
		args = append(args, FormatTimeForDB(*from))
	}
	if to != nil {
		query += " AND timestamp < ?"
		args = append(args, FormatTimeForDB(*to))
	}
	query += " ORDER BY timestamp DESC, id DESC"

	return QueryMultiple(ctx, r.db, query, ScanAttendanceEntries, "attendance entries", args...)
}
