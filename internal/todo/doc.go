// Package todo implements the business rules for managing todos.
//
// The Service validates input, normalizes text, and translates store
// failures into a small error taxonomy: ValidationError for bad input,
// NotFoundError for unknown ids, and StoreError for persistence faults.
// Handlers map these to HTTP status codes without inspecting SQL errors.
//
// Every operation is traced with a short correlation id and its duration,
// logged at debug on start and info on completion.
package todo
