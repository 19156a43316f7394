package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jominki354/maulwurf/internal/timeline"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteOperationLog implements the OperationLog interface using SQLite.
type SQLiteOperationLog struct {
	db   *sql.DB
	path string
}

// NewSQLiteOperationLog creates a new SQLite-backed operation log.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteOperationLog(path string) (*SQLiteOperationLog, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteOperationLog{
		db:   db,
		path: path,
	}, nil
}

// OpenConnection opens and configures a SQLite connection with appropriate PRAGMAs.
// This is exported for use in tools and tests that need a properly configured
// SQLite connection. path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// DB exposes the underlying connection for migration checks.
func (l *SQLiteOperationLog) DB() *sql.DB { return l.db }

func (l *SQLiteOperationLog) Record(operation, parameters string) (int64, error) {
	res, err := l.db.Exec(
		"INSERT INTO operations (operation, parameters, status, started_at) VALUES (?, ?, 'success', ?)",
		operation, parameters, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("recording operation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading operation id: %w", err)
	}
	return id, nil
}

func (l *SQLiteOperationLog) Finish(id int64, status string) error {
	_, err := l.db.Exec(
		"UPDATE operations SET status = ?, finished_at = ? WHERE id = ?",
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (l *SQLiteOperationLog) List(limit int) ([]*timeline.OperationRecord, error) {
	rows, err := l.db.Query(
		"SELECT id, operation, parameters, status, started_at, finished_at FROM operations ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []*timeline.OperationRecord
	for rows.Next() {
		var op timeline.OperationRecord
		var finished sql.NullTime
		if err := rows.Scan(&op.ID, &op.Operation, &op.Parameters, &op.Status, &op.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scanning operation row: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			op.FinishedAt = &t
		}
		ops = append(ops, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operation rows: %w", err)
	}
	return ops, nil
}

func (l *SQLiteOperationLog) Close() error {
	return l.db.Close()
}

// Compile-time check that SQLiteOperationLog implements timeline.OperationLog
var _ timeline.OperationLog = (*SQLiteOperationLog)(nil)
