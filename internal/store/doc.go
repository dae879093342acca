// Package store provides persistent storage for todos using SQLite.
//
// # Architecture
//
// The Store interface defines the persistence operations; SQLiteStore is the
// only implementation. Callers depend on the interface so tests can substitute
// failing stores.
//
// # Data Model
//
// A single table holds everything:
//
//	CREATE TABLE todos (
//	    id         TEXT PRIMARY KEY,
//	    text       TEXT NOT NULL,
//	    done       INTEGER NOT NULL DEFAULT 0,
//	    created_at TEXT NOT NULL
//	);
//
// Timestamps are stored as RFC 3339 UTC text with a fixed nine-digit
// fraction so that lexicographic ordering matches chronological ordering
// even when one fraction would be a prefix of another. ListTodos returns
// rows newest first by sorting on created_at descending.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//
// Database file locations:
//
//   - Development: ~/.local/share/todos/todos.db
//   - Testing: :memory: (in-memory database)
//
// # Error Handling
//
// GetTodo and UpdateTodo return ErrNotFound when no row matches the id.
// DeleteTodo does not report whether a row was removed; deleting an absent
// id succeeds. All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewSQLiteStore(":memory:") for tests with real SQLite.
package store
