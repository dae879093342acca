// Package config handles configuration loading for todos-server.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	tailscale:
//	  auth_key: "${TS_AUTHKEY}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "localhost:8080"
//
// Database:
//
//	database:
//	  path: "~/.local/share/todos/todos.db"
//
// Tailscale:
//
//	tailscale:
//	  enabled: false
//	  hostname: "todos"
//	  auth_key: "${TS_AUTHKEY}"
//	  https: true
//	  funnel: false
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Load validates that an HTTP address is set (unless Tailscale serves
// instead), that Tailscale has a hostname when enabled, and that a database
// path is present.
package config
