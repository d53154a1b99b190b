// Package sqlite provides the embedded SQLite task store for daygrid.
//
// The database runs in embedded mode using the ncruces/go-sqlite3 driver
// with WAL enabled for concurrent reads. It is the persistent side of the
// store gateway: the sync controller keeps the in-memory collection
// reconciled against it.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbickell/daygrid/internal/store"
	"github.com/sbickell/daygrid/internal/todo"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Store wraps the SQLite connection and implements store.Gateway.
type Store struct {
	conn *sql.DB
	path string
}

// Gateway conformance is checked at compile time.
var _ store.Gateway = (*Store)(nil)

// Open creates a new database connection at the specified path.
//
// If the database doesn't exist, it is created. The caller MUST call
// Close() when done.
//
// Example:
//
//	st, err := sqlite.Open("~/.daygrid/daygrid.db")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s", path)
	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	st := &Store{
		conn: conn,
		path: path,
	}

	// WAL mode for concurrent reads
	if _, err := st.conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := st.conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := st.initSchema(); err != nil {
		_ = st.Close()
		return nil, err
	}

	return st, nil
}

// RawDB returns the underlying sql.DB connection.
func (s *Store) RawDB() *sql.DB {
	return s.conn
}

// Close closes the database connection after checkpointing the WAL.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}

	if _, err := s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to checkpoint WAL: %v\n", err)
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.conn = nil
	return nil
}

// initSchema creates the todos table and indexes. Idempotent.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date TEXT,
		priority TEXT NOT NULL DEFAULT 'medium',
		is_completed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id);
	CREATE INDEX IF NOT EXISTS idx_todos_due ON todos(owner_id, due_date);
	CREATE INDEX IF NOT EXISTS idx_todos_completed ON todos(owner_id, is_completed);
	`

	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// CreateTask implements store.Gateway. The store assigns the ID and
// timestamps; IsCompleted always starts false.
func (s *Store) CreateTask(ctx context.Context, p store.CreateParams) (todo.Task, error) {
	now := time.Now()
	task := todo.Task{
		ID:          uuid.NewString(),
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		DueDate:     p.DueDate,
		Priority:    p.Priority,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.SetDefaults()

	if err := task.Validate(); err != nil {
		return todo.Task{}, fmt.Errorf("invalid task: %w", err)
	}

	query := `
	INSERT INTO todos (
		id, owner_id, title, description, due_date,
		priority, is_completed, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.conn.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		timeToNullString(task.DueDate),
		string(task.Priority),
		boolToInt(task.IsCompleted),
		task.CreatedAt.Format(time.RFC3339Nano),
		task.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask implements store.Gateway. A task owned by a different owner is
// indistinguishable from an absent one.
func (s *Store) GetTask(ctx context.Context, id, ownerID string) (todo.Task, error) {
	query := `
	SELECT id, owner_id, title, description, due_date,
	       priority, is_completed, created_at, updated_at
	FROM todos
	WHERE id = ? AND owner_id = ?
	`

	row := s.conn.QueryRowContext(ctx, query, id, ownerID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return todo.Task{}, store.ErrNotFound
		}
		return todo.Task{}, fmt.Errorf("failed to get task %s: %w", id, err)
	}

	return task, nil
}

// UpdateTask implements store.Gateway. All mutable fields are replaced and
// UpdatedAt is refreshed; the stored record is returned.
func (s *Store) UpdateTask(ctx context.Context, id, ownerID string, f store.Fields) (todo.Task, error) {
	if strings.TrimSpace(f.Title) == "" {
		return todo.Task{}, fmt.Errorf("invalid task: %w", todo.ErrTitleRequired)
	}
	if !f.Priority.Valid() {
		return todo.Task{}, fmt.Errorf("invalid task: %w", todo.ErrInvalidPriority)
	}

	query := `
	UPDATE todos SET
		title = ?,
		description = ?,
		due_date = ?,
		priority = ?,
		is_completed = ?,
		updated_at = ?
	WHERE id = ? AND owner_id = ?
	`

	res, err := s.conn.ExecContext(ctx, query,
		f.Title,
		f.Description,
		timeToNullString(f.DueDate),
		string(f.Priority),
		boolToInt(f.IsCompleted),
		time.Now().Format(time.RFC3339Nano),
		id,
		ownerID,
	)
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to update task %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	if n == 0 {
		return todo.Task{}, store.ErrNotFound
	}

	return s.GetTask(ctx, id, ownerID)
}

// DeleteTask implements store.Gateway. Returns store.ErrNotFound when no
// row matched the id/owner pair.
func (s *Store) DeleteTask(ctx context.Context, id, ownerID string) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}

	return nil
}

// ListTasks implements store.Gateway. Results are ordered by due date
// (tasks without one last), then created_at.
func (s *Store) ListTasks(ctx context.Context, ownerID string) ([]todo.Task, error) {
	query := `
	SELECT id, owner_id, title, description, due_date,
	       priority, is_completed, created_at, updated_at
	FROM todos
	WHERE owner_id = ?
	ORDER BY due_date IS NULL, due_date ASC, created_at ASC
	`

	rows, err := s.conn.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []todo.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// CountTasks returns the number of tasks belonging to ownerID.
func (s *Store) CountTasks(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM todos WHERE owner_id = ?`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (todo.Task, error) {
	var task todo.Task
	var priority string
	var completed int
	var createdAt, updatedAt string
	var dueDate sql.NullString

	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&dueDate,
		&priority,
		&completed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return todo.Task{}, err
	}

	task.Priority = todo.Priority(priority)
	task.IsCompleted = completed != 0

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		task.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		task.UpdatedAt = t
	}
	task.DueDate = nullStringToTime(dueDate)

	return task, nil
}

// timeToNullString converts a time pointer to a nullable string for SQL.
// RFC3339Nano keeps incidental time-of-day intact across round-trips.
func timeToNullString(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

// nullStringToTime converts a nullable SQL string to a time pointer.
func nullStringToTime(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
