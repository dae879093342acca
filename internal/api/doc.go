// Package api serves the todos REST API over HTTP.
//
// # Endpoints
//
//   - GET    /todos                  - List todos, newest first
//   - POST   /todos                  - Create a todo from {"text": "..."}
//   - PATCH  /todos/{id}             - Partial update: text and/or done
//   - DELETE /todos/{id}             - Delete one todo (idempotent)
//   - DELETE /todos?completed=true   - Delete all completed todos
//   - GET    /health                 - Liveness check
//
// Errors are JSON objects of the form {"error": "message"}. Validation
// failures map to 400, unknown ids to 404, and storage failures to 500
// with the cause logged but not exposed.
//
// # Lifecycle
//
// Server.Run listens until the context is canceled, then shuts down
// gracefully with a five second deadline. When Tailscale is enabled the
// listener comes from an embedded tsnet node instead of a TCP socket,
// optionally terminating HTTPS or exposing a public Funnel endpoint.
package api
