// ABOUTME: Tests for the todo Service business rules and error translation.
// ABOUTME: Uses a real in-memory store plus a failing store stub.

package todo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/todos/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s, nil)
}

func TestCreateTrimsText(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, "  buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", todo.Text)
	assert.False(t, todo.Done)
	assert.NotEmpty(t, todo.ID)
	assert.False(t, todo.CreatedAt.IsZero())
}

func TestCreateRejectsWhitespaceOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %q", input)
	}

	// No row may have been stored
	todos, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestUpdatePartialFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "original")
	require.NoError(t, err)

	// done only: text unchanged
	done := true
	updated, err := svc.Update(ctx, created.ID, UpdateFields{Done: &done})
	require.NoError(t, err)
	assert.True(t, updated.Done)
	assert.Equal(t, "original", updated.Text)

	// text only: done unchanged
	text := "  renamed  "
	updated, err = svc.Update(ctx, created.ID, UpdateFields{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Text)
	assert.True(t, updated.Done)
}

func TestUpdateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "something")
	require.NoError(t, err)

	var verr *ValidationError

	// Neither field provided
	_, err = svc.Update(ctx, created.ID, UpdateFields{})
	require.ErrorAs(t, err, &verr)

	// Text trims to empty
	empty := "   "
	_, err = svc.Update(ctx, created.ID, UpdateFields{Text: &empty})
	require.ErrorAs(t, err, &verr)
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newTestService(t)

	done := true
	_, err := svc.Update(context.Background(), "does-not-exist", UpdateFields{Done: &done})
	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "does-not-exist", nerr.ID)
}

func TestDeleteAbsentIDSucceeds(t *testing.T) {
	svc := newTestService(t)

	err := svc.Delete(context.Background(), "never-existed")
	assert.NoError(t, err)
}

func TestClearCompletedIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "done task")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "open task")
	require.NoError(t, err)

	done := true
	_, err = svc.Update(ctx, a.ID, UpdateFields{Done: &done})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCompleted(ctx))
	require.NoError(t, svc.ClearCompleted(ctx), "second call must not fail")

	todos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "open task", todos[0].Text)
	for _, todo := range todos {
		assert.False(t, todo.Done)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "older")
	require.NoError(t, err)
	newer, err := svc.Create(ctx, "newer")
	require.NoError(t, err)

	todos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, newer.ID, todos[0].ID, "newest item must come first")
}

// failingStore returns a fixed error from every operation.
type failingStore struct {
	err error
}

func (f *failingStore) CreateTodo(context.Context, *store.Todo) error { return f.err }
func (f *failingStore) GetTodo(context.Context, string) (*store.Todo, error) {
	return nil, f.err
}
func (f *failingStore) ListTodos(context.Context) ([]*store.Todo, error) { return nil, f.err }
func (f *failingStore) UpdateTodo(context.Context, string, store.UpdateFields) (*store.Todo, error) {
	return nil, f.err
}
func (f *failingStore) DeleteTodo(context.Context, string) error { return f.err }
func (f *failingStore) DeleteCompleted(context.Context) error    { return f.err }
func (f *failingStore) Close() error                             { return nil }

func TestStoreFailuresBecomeStoreErrors(t *testing.T) {
	cause := errors.New("disk on fire")
	svc := New(&failingStore{err: cause}, nil)
	ctx := context.Background()

	var serr *StoreError

	_, err := svc.List(ctx)
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, cause)

	_, err = svc.Create(ctx, "x")
	require.ErrorAs(t, err, &serr)

	done := true
	_, err = svc.Update(ctx, "id", UpdateFields{Done: &done})
	require.ErrorAs(t, err, &serr)

	require.ErrorAs(t, svc.Delete(ctx, "id"), &serr)
	require.ErrorAs(t, svc.ClearCompleted(ctx), &serr)
}
