// Package client is the HTTP client for the todos REST API.
//
// The base URL must be provided explicitly; there is no default host.
// Non-2xx responses become *APIError values carrying the status code and
// the server's error message.
package client
