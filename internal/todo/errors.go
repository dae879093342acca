// ABOUTME: Error taxonomy for the todo service.
// ABOUTME: Distinguishes invalid input, missing targets, and persistence failures.

package todo

import "fmt"

// ValidationError reports invalid or missing caller input. It is never
// retried and maps to a 400 at the HTTP boundary.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports that the operation target does not exist. Maps to a
// 404 at the HTTP boundary.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("todo %s not found", e.ID)
}

// StoreError wraps a persistence layer failure of any kind. Maps to a 500 at
// the HTTP boundary; the cause is logged, never surfaced to clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: store failure: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
