// ABOUTME: Store interface and data types for todos persistence
// ABOUTME: Defines the Todo struct and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested todo does not exist
var ErrNotFound = errors.New("not found")

// Todo represents a single task record
type Todo struct {
	ID        string
	Text      string
	Done      bool
	CreatedAt time.Time
}

// UpdateFields carries a partial update. Nil fields are left untouched in
// storage.
type UpdateFields struct {
	Text *string
	Done *bool
}

// Store is the persistence interface for todos.
type Store interface {
	// CreateTodo persists a new todo. ID and CreatedAt are assigned when unset.
	CreateTodo(ctx context.Context, todo *Todo) error

	// GetTodo retrieves a todo by ID. Returns ErrNotFound if no row matches.
	GetTodo(ctx context.Context, id string) (*Todo, error)

	// ListTodos returns all todos ordered by creation time, newest first.
	ListTodos(ctx context.Context) ([]*Todo, error)

	// UpdateTodo applies the non-nil fields to the todo with the given ID and
	// returns the updated row. Returns ErrNotFound if no row matches.
	UpdateTodo(ctx context.Context, id string, fields UpdateFields) (*Todo, error)

	// DeleteTodo deletes a todo by ID. It does not report whether a row was
	// actually removed: deleting an already-absent ID succeeds.
	DeleteTodo(ctx context.Context, id string) error

	// DeleteCompleted deletes all todos with done=true. Matching zero rows is
	// not an error.
	DeleteCompleted(ctx context.Context) error

	// Close releases the underlying database resources.
	Close() error
}
