// ABOUTME: Terminal client for the todos API.
// ABOUTME: Runs the Bubble Tea list UI against a server picked via flag or env.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389/todos/internal/client"
	"github.com/2389/todos/internal/ui"
)

func main() {
	server := flag.String("server", "", "Todos server URL (defaults to TODOS_API_URL)")
	debugLog := flag.String("debug-log", "", "Write client request logs to this file")
	flag.Parse()

	baseURL := *server
	if baseURL == "" {
		baseURL = os.Getenv("TODOS_API_URL")
	}

	logger := setupLogger(*debugLog)

	c, err := client.New(baseURL, logger)
	if err != nil {
		if errors.Is(err, client.ErrNoBaseURL) {
			fmt.Fprintln(os.Stderr, "Error: no server configured.")
			fmt.Fprintln(os.Stderr, "Pass -server http://localhost:8080 or set TODOS_API_URL.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(ui.New(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger returns a logger writing to the debug file, or one that
// discards everything. Stdout belongs to the TUI.
func setupLogger(path string) *slog.Logger {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
