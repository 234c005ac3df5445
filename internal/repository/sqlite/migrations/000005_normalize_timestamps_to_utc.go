package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

func init() {
	RegisterGoMigration(5, "normalize_timestamps_to_utc", upNormalizeTimestampsToUTC, downNormalizeTimestampsToUTC)
}

// timestampColumns lists every server timestamp column. Rows imported from older
// exports carry zone offsets, fractional seconds or no zone at all.
var timestampColumns = []struct {
	table  string
	column string
}{
	{"tasks", "created_at"},
	{"tasks", "updated_at"},
	{"time_logs", "created_at"},
	{"attendance_entries", "timestamp"},
}

// upNormalizeTimestampsToUTC rewrites every timestamp as second-precision UTC RFC3339,
// which keeps lexical order equal to chronological order.
func upNormalizeTimestampsToUTC(ctx context.Context, tx *sql.Tx) error {
	for _, tc := range timestampColumns {
		if err := normalizeColumn(ctx, tx, tc.table, tc.column); err != nil {
			return err
		}
	}
	return nil
}

// downNormalizeTimestampsToUTC is a no-op: UTC RFC3339 is readable by every earlier version.
func downNormalizeTimestampsToUTC(ctx context.Context, tx *sql.Tx) error {
	return nil
}

func normalizeColumn(ctx context.Context, tx *sql.Tx, table, column string) error {
	// Read all rows into memory first to avoid holding a cursor while updating
	type row struct {
		id    int64
		value string
	}
	var rows []row

	query := fmt.Sprintf("SELECT id, %s FROM %s WHERE %s IS NOT NULL", column, table, column)
	result, err := tx.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query %s.%s: %w", table, column, err)
	}
	for result.Next() {
		var r row
		if err := result.Scan(&r.id, &r.value); err != nil {
			result.Close()
			return fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		rows = append(rows, r)
	}
	if err := result.Err(); err != nil {
		result.Close()
		return fmt.Errorf("error iterating %s: %w", table, err)
	}
	result.Close()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", table, column))
	if err != nil {
		return fmt.Errorf("failed to prepare %s.%s update: %w", table, column, err)
	}
	defer stmt.Close()

	for _, r := range rows {
		normalized, err := normalizeTimestamp(r.value)
		if err != nil {
			return fmt.Errorf("%s id %d: %w", table, r.id, err)
		}
		if normalized == r.value {
			continue
		}
		if _, err := stmt.ExecContext(ctx, normalized, r.id); err != nil {
			return fmt.Errorf("failed to update %s id %d: %w", table, r.id, err)
		}
	}
	return nil
}

// normalizeTimestamp parses the layouts seen in legacy data and renders UTC RFC3339.
// Values without a zone are taken as UTC.
func normalizeTimestamp(value string) (string, error) {
	value = stripMonotonicSuffix(strings.TrimSpace(value))

	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999 -0700",
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05 -0700",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Truncate(time.Second).Format(time.RFC3339), nil
		}
	}

	return "", fmt.Errorf("could not parse time format: %s", value)
}

// stripMonotonicSuffix removes the monotonic clock suffix from Go time strings.
func stripMonotonicSuffix(value string) string {
	if idx := strings.Index(value, " m="); idx != -1 {
		return value[:idx]
	}
	return value
}
