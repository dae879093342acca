// ABOUTME: HTTP handlers for the todos REST API.
// ABOUTME: Maps wire payloads to service calls and service errors to status codes.

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/2389/todos/internal/store"
	"github.com/2389/todos/internal/todo"
)

// CreateTodoRequest is the JSON request body for POST /todos.
type CreateTodoRequest struct {
	Text *string `json:"text"`
}

// UpdateTodoRequest is the JSON request body for PATCH /todos/{id}.
// Pointer fields distinguish "absent" from "zero value".
type UpdateTodoRequest struct {
	Text *string `json:"text"`
	Done *bool   `json:"done"`
}

// TodoResponse is the JSON shape of a todo on the wire.
type TodoResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
}

func toTodoResponse(t *store.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Text:      t.Text,
		Done:      t.Done,
		CreatedAt: t.CreatedAt.Format(time.RFC3339Nano),
	}
}

// handleTodos routes /todos requests by HTTP method.
func (s *Server) handleTodos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTodos(w, r)
	case http.MethodPost:
		s.handleCreateTodo(w, r)
	case http.MethodDelete:
		s.handleClearCompleted(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleTodoByID routes /todos/{id} requests by HTTP method.
func (s *Server) handleTodoByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/todos/")
	if id == "" || strings.Contains(id, "/") {
		s.sendJSONError(w, http.StatusBadRequest, "invalid path")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		s.handleUpdateTodo(w, r, id)
	case http.MethodDelete:
		s.handleDeleteTodo(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleListTodos handles GET /todos.
// Returns a JSON array of all todos, newest first.
func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.service.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	response := make([]TodoResponse, len(todos))
	for i, t := range todos {
		response[i] = toTodoResponse(t)
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleCreateTodo handles POST /todos.
// The body must carry a non-empty text field; the stored text is trimmed.
func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// First validation pass on wire shape; the service re-validates so it can
	// also be driven directly.
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		s.sendJSONError(w, http.StatusBadRequest, "text is required")
		return
	}

	created, err := s.service.Create(r.Context(), *req.Text)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toTodoResponse(created))
}

// handleUpdateTodo handles PATCH /todos/{id}.
// Applies only the provided fields; at least one of text/done is required.
func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request, id string) {
	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Text == nil && req.Done == nil {
		s.sendJSONError(w, http.StatusBadRequest, "provide text and/or done")
		return
	}
	if req.Text != nil && strings.TrimSpace(*req.Text) == "" {
		s.sendJSONError(w, http.StatusBadRequest, "text must be a non-empty string")
		return
	}

	updated, err := s.service.Update(r.Context(), id, todo.UpdateFields{
		Text: req.Text,
		Done: req.Done,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toTodoResponse(updated))
}

// handleDeleteTodo handles DELETE /todos/{id}.
// Always returns 204 for a reachable store: deleting an absent id succeeds.
func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.service.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClearCompleted handles DELETE /todos?completed=true.
// Any other completed value is rejected so a bare DELETE /todos can never
// wipe the table by accident.
func (s *Server) handleClearCompleted(w http.ResponseWriter, r *http.Request) {
	completed := r.URL.Query().Get("completed")
	if !strings.EqualFold(completed, "true") {
		s.sendJSONError(w, http.StatusBadRequest, "unsupported delete; use /todos/{id} or ?completed=true")
		return
	}

	if err := s.service.ClearCompleted(r.Context()); err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// writeServiceError maps the service error taxonomy onto HTTP status codes.
// Store failures are logged here and surfaced as an opaque 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var verr *todo.ValidationError
	if errors.As(err, &verr) {
		s.sendJSONError(w, http.StatusBadRequest, verr.Error())
		return
	}

	var nerr *todo.NotFoundError
	if errors.As(err, &nerr) {
		s.sendJSONError(w, http.StatusNotFound, "not found")
		return
	}

	s.logger.Error("store failure", "error", err)
	s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
}

// writeJSON writes a JSON response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
