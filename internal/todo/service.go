// ABOUTME: Todo service with input validation and business rules.
// ABOUTME: The only layer that translates raw store failures into the error taxonomy.

package todo

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/2389/todos/internal/store"
)

// UpdateFields carries a partial update request. Nil fields are left
// untouched in storage.
type UpdateFields struct {
	Text *string
	Done *bool
}

// Service implements the todo business rules on top of a Store: text is
// trimmed before persisting, done defaults to false, and store failures are
// translated into ValidationError / NotFoundError / StoreError.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a new todo Service.
func New(s store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  s,
		logger: logger.With("component", "todo"),
	}
}

// List returns all todos ordered by creation time, newest first.
func (s *Service) List(ctx context.Context) ([]*store.Todo, error) {
	t := s.begin("list")

	todos, err := s.store.ListTodos(ctx)
	if err != nil {
		serr := &StoreError{Op: "list", Err: err}
		t.Fail(serr)
		return nil, serr
	}

	t.End("rows", len(todos))
	return todos, nil
}

// Create validates and persists a new todo. The stored text is trimmed and
// done always starts false.
func (s *Service) Create(ctx context.Context, text string) (*store.Todo, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ValidationError{Reason: "text is required"}
	}

	t := s.begin("create", "text", trimmed)

	todo := &store.Todo{Text: trimmed, Done: false}
	if err := s.store.CreateTodo(ctx, todo); err != nil {
		serr := &StoreError{Op: "create", Err: err}
		t.Fail(serr)
		return nil, serr
	}

	t.End("id", todo.ID)
	return todo, nil
}

// Update applies a partial update to the todo with the given id. At least one
// field must be provided; a provided text must not trim to empty.
func (s *Service) Update(ctx context.Context, id string, fields UpdateFields) (*store.Todo, error) {
	if fields.Text == nil && fields.Done == nil {
		return nil, &ValidationError{Reason: "provide text and/or done"}
	}

	var sf store.UpdateFields
	if fields.Text != nil {
		trimmed := strings.TrimSpace(*fields.Text)
		if trimmed == "" {
			return nil, &ValidationError{Reason: "text must be a non-empty string"}
		}
		sf.Text = &trimmed
	}
	sf.Done = fields.Done

	t := s.begin("update", "id", id)

	todo, err := s.store.UpdateTodo(ctx, id, sf)
	if errors.Is(err, store.ErrNotFound) {
		nerr := &NotFoundError{ID: id}
		t.Fail(nerr)
		return nil, nerr
	}
	if err != nil {
		serr := &StoreError{Op: "update", Err: err}
		t.Fail(serr)
		return nil, serr
	}

	t.End("id", todo.ID, "done", todo.Done)
	return todo, nil
}

// Delete removes the todo with the given id. Deleting an id that does not
// exist succeeds: the store's delete-by-id cannot distinguish "deleted" from
// "was already gone", and callers rely on deletes never failing for absent
// rows.
func (s *Service) Delete(ctx context.Context, id string) error {
	t := s.begin("delete", "id", id)

	if err := s.store.DeleteTodo(ctx, id); err != nil {
		serr := &StoreError{Op: "delete", Err: err}
		t.Fail(serr)
		return serr
	}

	t.End("id", id)
	return nil
}

// ClearCompleted removes all todos with done=true. Matching zero rows is not
// an error.
func (s *Service) ClearCompleted(ctx context.Context) error {
	t := s.begin("clear_completed")

	if err := s.store.DeleteCompleted(ctx); err != nil {
		serr := &StoreError{Op: "clear_completed", Err: err}
		t.Fail(serr)
		return serr
	}

	t.End("cleared", true)
	return nil
}
