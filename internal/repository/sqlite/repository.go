package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"work-tracker/internal/errors"
	"work-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// TaskSearchOptions contains all possible task listing parameters.
// OrganizationID is mandatory: every task query is scoped to one tenant.
type TaskSearchOptions struct {
	OrganizationID  int64
	ProjectID       *int64
	AssigneeID      *int64
	ReporterID      *int64
	CheckerID       *int64
	ExcludeStatuses []string
	Limit           int
	Offset          int
}

// TimeLogSearchOptions filters time logs. From and To are inclusive calendar dates.
type TimeLogSearchOptions struct {
	TaskID *int64
	UserID *int64
	From   *time.Time
	To     *time.Time
}

// Repository defines the interface for database operations
type Repository interface {
	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, orgID, id int64) (*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, orgID, id int64) (bool, error)
	SearchTasks(ctx context.Context, opts TaskSearchOptions) ([]*Task, error)
	CountTasks(ctx context.Context, opts TaskSearchOptions) (int, error)

	// Time logs
	CreateTimeLog(ctx context.Context, log *TimeLog) error
	GetTimeLog(ctx context.Context, id int64) (*TimeLog, error)
	UpdateTimeLog(ctx context.Context, log *TimeLog) error
	DeleteTimeLog(ctx context.Context, id int64) error
	SearchTimeLogs(ctx context.Context, opts TimeLogSearchOptions) ([]*TimeLog, error)

	// Attendance
	CreateAttendanceEntry(ctx context.Context, entry *AttendanceEntry) error
	GetLatestAttendanceEntry(ctx context.Context, userID int64) (*AttendanceEntry, error)
	ListAttendanceEntries(ctx context.Context, userID int64, from, to *time.Time) ([]*AttendanceEntry, error)

	// Directory
	CreateOrganization(ctx context.Context, org *Organization) error
	CreateUser(ctx context.Context, user *User) error
	CreateProject(ctx context.Context, project *Project) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ProjectExists(ctx context.Context, id int64) (bool, error)
	ProjectOrganizationID(ctx context.Context, id int64) (int64, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	UserOrganizationID(ctx context.Context, id int64) (*int64, error)

	// WithTx runs fn against a repository bound to one transaction. The transaction
	// commits when fn returns nil and rolls back otherwise. Nested calls join the
	// outer transaction.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// Utility
	Close() error
}

// Options configures how the database is opened.
type Options struct {
	Path           string
	BusyTimeout    time.Duration
	SkipMigrations bool
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	conn *sql.DB
	db   dbtx
	tx   *sql.Tx
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return Open(context.Background(), Options{Path: dbPath})
}

// Open opens the database, limits the pool to a single writer connection and runs migrations.
// Transactions start with BEGIN IMMEDIATE so a read-then-write sequence holds the write lock throughout.
func Open(ctx context.Context, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", buildDSN(opts))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("open database", err)
	}

	if !opts.SkipMigrations {
		if err := migrations.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("run migrations", err)
		}
	}

	return &SQLiteRepository{conn: db, db: db}, nil
}

func buildDSN(opts Options) string {
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	sep := "?"
	if strings.Contains(opts.Path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_txlock=immediate&_pragma=busy_timeout(%d)", opts.Path, sep, busy.Milliseconds())
}

// DB exposes the underlying pool for schema maintenance.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.conn
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	if r.tx != nil {
		return nil
	}
	return r.conn.Close()
}

// WithTx implements Repository.
func (r *SQLiteRepository) WithTx(ctx context.Context, fn func(Repository) error) (err error) {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&SQLiteRepository{conn: r.conn, db: tx, tx: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}
