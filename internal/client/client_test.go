// ABOUTME: Tests for the API client against an in-process HTTP server.
// ABOUTME: Covers success paths, error decoding, and base URL validation.

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("", nil)
	require.ErrorIs(t, err, ErrNoBaseURL)

	_, err = New("   ", nil)
	require.ErrorIs(t, err, ErrNoBaseURL)
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/todos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", nil)
	require.NoError(t, err)

	todos, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestCreate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/todos", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "buy milk", body["text"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Todo{
			ID: "abc", Text: "buy milk", Done: false,
			CreatedAt: "2026-01-02T15:04:05.999999999Z",
		})
	}))
	defer ts.Close()

	c, err := New(ts.URL, nil)
	require.NoError(t, err)

	created, err := c.Create(context.Background(), "buy milk")
	require.NoError(t, err)
	assert.Equal(t, "abc", created.ID)
	assert.Equal(t, "buy milk", created.Text)
	assert.False(t, created.Done)
}

func TestUpdateSendsOnlySetFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/todos/abc", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"done": true}, body)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Todo{ID: "abc", Text: "buy milk", Done: true})
	}))
	defer ts.Close()

	c, err := New(ts.URL, nil)
	require.NoError(t, err)

	done := true
	updated, err := c.Update(context.Background(), "abc", UpdateFields{Done: &done})
	require.NoError(t, err)
	assert.True(t, updated.Done)
	assert.Equal(t, "buy milk", updated.Text)
}

func TestDeleteAccepts204(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/todos/abc", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c, err := New(ts.URL, nil)
	require.NoError(t, err)
	require.NoError(t, c.Delete(context.Background(), "abc"))
}

func TestClearCompleted(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/todos", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("completed"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c, err := New(ts.URL, nil)
	require.NoError(t, err)
	require.NoError(t, c.ClearCompleted(context.Background()))
}

func TestErrorBodyDecoded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "text is required"}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, nil)
	require.NoError(t, err)

	_, err = c.Create(context.Background(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "text is required", apiErr.Message)
}

func TestErrorWithoutBodyFallsBackToStatusText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c, err := New(ts.URL, nil)
	require.NoError(t, err)

	_, err = c.List(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	c, err := New(ts.URL, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
