// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides todo persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// timeLayout is RFC 3339 UTC with a fixed nine-digit fraction. RFC3339Nano
// drops trailing fractional zeros, and a whole-second "...05Z" would sort
// after a later "...05.5Z" because 'Z' > '.'. The fixed width keeps
// lexicographic order equal to chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			done INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_todos_created_at
			ON todos(created_at);

		CREATE INDEX IF NOT EXISTS idx_todos_done
			ON todos(done);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTodo persists a new todo, assigning ID and CreatedAt when unset.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo *Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (id, text, done, created_at)
		VALUES (?, ?, ?, ?)
	`, todo.ID, todo.Text, boolToInt(todo.Done), todo.CreatedAt.UTC().Format(timeLayout))

	return err
}

// GetTodo retrieves a todo by ID.
func (s *SQLiteStore) GetTodo(ctx context.Context, id string) (*Todo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, done, created_at FROM todos WHERE id = ?
	`, id)
	return scanTodo(row)
}

// ListTodos lists all todos ordered by created_at descending. Timestamps are
// stored as fixed-width RFC 3339 text, so the lexicographic sort is
// chronological.
func (s *SQLiteStore) ListTodos(ctx context.Context) ([]*Todo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, done, created_at FROM todos ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	todos := []*Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// UpdateTodo applies the non-nil fields to an existing todo and returns the
// updated row. The SET clause is built only from the provided fields so that
// omitted fields are left untouched.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, id string, fields UpdateFields) (*Todo, error) {
	var sets []string
	var args []any

	if fields.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *fields.Text)
	}
	if fields.Done != nil {
		sets = append(sets, "done = ?")
		args = append(args, boolToInt(*fields.Done))
	}
	if len(sets) == 0 {
		return s.GetTodo(ctx, id)
	}
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		`UPDATE todos SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return nil, ErrNotFound
	}

	return s.GetTodo(ctx, id)
}

// DeleteTodo deletes a todo by ID. Deleting an ID that does not exist is not
// an error: callers cannot distinguish "deleted" from "was already gone",
// matching the filter-delete semantics of DeleteCompleted.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	return err
}

// DeleteCompleted deletes all todos where done is true.
func (s *SQLiteStore) DeleteCompleted(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE done = 1`)
	return err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*Todo, error) {
	var t Todo
	var done int
	var createdAt string

	err := row.Scan(&t.ID, &t.Text, &done, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.Done = done != 0
	t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
