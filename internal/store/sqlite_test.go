// ABOUTME: Tests for the SQLite Store implementation.
// ABOUTME: Uses a real SQLite in-memory database for integration testing.

package store

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetTodo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo := &Todo{Text: "buy milk"}
	if err := s.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if todo.ID == "" {
		t.Error("expected ID to be set")
	}
	if todo.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := s.GetTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("GetTodo: %v", err)
	}
	if got.Text != "buy milk" {
		t.Errorf("unexpected text: %s", got.Text)
	}
	if got.Done {
		t.Error("expected done to default to false")
	}
}

func TestGetTodoNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetTodo(context.Background(), "no-such-id")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListTodosOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, text := range []string{"first", "second", "third"} {
		todo := &Todo{Text: text, CreatedAt: base.Add(time.Duration(i) * time.Millisecond)}
		if err := s.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}
	}

	todos, err := s.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}
	// Newest first
	if todos[0].Text != "third" || todos[1].Text != "second" || todos[2].Text != "first" {
		t.Errorf("unexpected order: %s, %s, %s", todos[0].Text, todos[1].Text, todos[2].Text)
	}
	for i := 0; i < len(todos)-1; i++ {
		if todos[i].CreatedAt.Before(todos[i+1].CreatedAt) {
			t.Errorf("todos[%d] older than todos[%d]", i, i+1)
		}
	}
}

func TestListTodosOrderingWithinSameSecond(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A whole-second timestamp and a later fractional one in the same
	// second. A variable-width encoding would sort these backwards.
	base := time.Date(2026, 1, 2, 12, 0, 5, 0, time.UTC)
	older := &Todo{Text: "older", CreatedAt: base}
	newer := &Todo{Text: "newer", CreatedAt: base.Add(500 * time.Millisecond)}
	for _, todo := range []*Todo{older, newer} {
		if err := s.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}
	}

	todos, err := s.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[0].Text != "newer" {
		t.Errorf("expected %q first, got %q", "newer", todos[0].Text)
	}
	if !todos[0].CreatedAt.Equal(newer.CreatedAt) {
		t.Errorf("timestamp lost precision: %v", todos[0].CreatedAt)
	}
}

func TestListTodosEmpty(t *testing.T) {
	s := newTestStore(t)

	todos, err := s.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("expected empty list, got %d todos", len(todos))
	}
}

func TestUpdateTodoPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo := &Todo{Text: "write tests"}
	if err := s.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	// Update done only: text must be untouched
	done := true
	got, err := s.UpdateTodo(ctx, todo.ID, UpdateFields{Done: &done})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if !got.Done {
		t.Error("expected done=true")
	}
	if got.Text != "write tests" {
		t.Errorf("text changed unexpectedly: %s", got.Text)
	}

	// Update text only: done must be untouched
	text := "write more tests"
	got, err = s.UpdateTodo(ctx, todo.ID, UpdateFields{Text: &text})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if got.Text != "write more tests" {
		t.Errorf("unexpected text: %s", got.Text)
	}
	if !got.Done {
		t.Error("done changed unexpectedly")
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	s := newTestStore(t)

	done := true
	_, err := s.UpdateTodo(context.Background(), "no-such-id", UpdateFields{Done: &done})
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTodoIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo := &Todo{Text: "ephemeral"}
	if err := s.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	if err := s.DeleteTodo(ctx, todo.ID); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	// Deleting an already-gone row must not fail
	if err := s.DeleteTodo(ctx, todo.ID); err != nil {
		t.Errorf("DeleteTodo on absent row: %v", err)
	}

	_, err := s.GetTodo(ctx, todo.ID)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteCompleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	done := true
	for _, text := range []string{"a", "b", "c"} {
		todo := &Todo{Text: text}
		if err := s.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo: %v", err)
		}
		if text != "b" {
			if _, err := s.UpdateTodo(ctx, todo.ID, UpdateFields{Done: &done}); err != nil {
				t.Fatalf("UpdateTodo: %v", err)
			}
		}
	}

	if err := s.DeleteCompleted(ctx); err != nil {
		t.Fatalf("DeleteCompleted: %v", err)
	}

	todos, err := s.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected 1 remaining todo, got %d", len(todos))
	}
	if todos[0].Text != "b" {
		t.Errorf("wrong survivor: %s", todos[0].Text)
	}

	// Second call with nothing to delete must not fail
	if err := s.DeleteCompleted(ctx); err != nil {
		t.Errorf("DeleteCompleted second call: %v", err)
	}
}
