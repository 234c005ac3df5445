package sqlite

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// FormatTimeForDB formats a time.Time value as a UTC RFC3339 string for consistent database storage.
// Storing every timestamp in UTC keeps lexical order equal to chronological order.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDateForDB formats the calendar date of t as YYYY-MM-DD.
func FormatDateForDB(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDatePtrForDB is FormatDateForDB for optional dates.
func FormatDatePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatDateForDB(*t)
}

// ParseDateFromDB parses a YYYY-MM-DD date into midnight UTC.
func ParseDateFromDB(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatHoursForDB renders hours with two fixed decimals.
func FormatHoursForDB(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
