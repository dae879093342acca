// ABOUTME: Bubble Tea model holding the client-side todo list state.
// ABOUTME: Mutations apply optimistically and roll back to a snapshot on API failure.

package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389/todos/internal/client"
)

const requestTimeout = 10 * time.Second

// api is the slice of the HTTP client the model needs. *client.Client
// satisfies it; tests substitute a stub.
type api interface {
	List(ctx context.Context) ([]client.Todo, error)
	Create(ctx context.Context, text string) (*client.Todo, error)
	Update(ctx context.Context, id string, fields client.UpdateFields) (*client.Todo, error)
	Delete(ctx context.Context, id string) error
	ClearCompleted(ctx context.Context) error
}

// Messages delivered by commands.
type (
	loadedMsg  struct{ todos []client.Todo }
	createdMsg struct{ todo *client.Todo }
	updatedMsg struct{ todo *client.Todo }

	// clearedMsg confirms a server-side delete or clear-completed.
	clearedMsg struct{}

	// toggleFailedMsg reverts a single entry's done flag. Only that entry is
	// touched: mutations that interleaved with the failed toggle must survive.
	toggleFailedMsg struct {
		id       string
		prevDone bool
		err      error
	}

	// rollbackMsg restores a snapshot taken before an optimistic removal.
	rollbackMsg struct {
		snapshot []client.Todo
		err      error
	}

	errMsg struct{ err error }
)

// Model is the TUI state: the fetched todo list plus input and status.
type Model struct {
	api    api
	todos  []client.Todo
	cursor int

	input  textinput.Model
	adding bool

	loading bool
	status  string
	width   int
	height  int
}

// New creates a model that fetches its list from the given API client.
func New(c *client.Client) Model {
	return newModel(c)
}

func newModel(a api) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200

	return Model{
		api:     a,
		input:   ti,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.status = ""
		m.todos = msg.todos
		m.clampCursor()
		return m, nil

	case createdMsg:
		// Server confirmed the add; newest first, matching the list order.
		m.todos = append([]client.Todo{*msg.todo}, m.todos...)
		m.cursor = 0
		m.status = ""
		return m, nil

	case updatedMsg:
		m.status = ""
		for i := range m.todos {
			if m.todos[i].ID == msg.todo.ID {
				m.todos[i] = *msg.todo
				break
			}
		}
		return m, nil

	case clearedMsg:
		m.status = ""
		return m, nil

	case toggleFailedMsg:
		for i := range m.todos {
			if m.todos[i].ID == msg.id {
				m.todos[i].Done = msg.prevDone
				break
			}
		}
		m.status = errorStyle.Render(fmt.Sprintf("error: %v", msg.err))
		return m, nil

	case rollbackMsg:
		m.todos = msg.snapshot
		m.clampCursor()
		m.status = errorStyle.Render(fmt.Sprintf("error: %v", msg.err))
		return m, nil

	case errMsg:
		m.loading = false
		m.status = errorStyle.Render(fmt.Sprintf("error: %v", msg.err))
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}

	if m.adding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.status = errorStyle.Render("todo text cannot be empty")
			return m, nil
		}
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		m.status = ""
		return m, m.createCmd(text)
	case "esc":
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
		return m, nil
	case "a":
		m.adding = true
		m.input.Focus()
		m.status = ""
		return m, textinput.Blink
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case " ", "enter":
		return m.toggleSelected()
	case "d":
		return m.deleteSelected()
	case "c":
		return m.clearCompleted()
	}
	return m, nil
}

// toggleSelected flips the done flag locally and asks the server to match.
// On failure only this entry's flag is reverted, from the value captured
// here, never from a re-read of current state.
func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return m, nil
	}

	id := m.todos[m.cursor].ID
	prev := m.todos[m.cursor].Done
	next := !prev
	m.todos[m.cursor].Done = next

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		updated, err := m.api.Update(ctx, id, client.UpdateFields{Done: &next})
		if err != nil {
			return toggleFailedMsg{id: id, prevDone: prev, err: err}
		}
		return updatedMsg{todo: updated}
	}
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return m, nil
	}

	snapshot := m.snapshot()
	id := m.todos[m.cursor].ID
	m.todos = append(m.todos[:m.cursor], m.todos[m.cursor+1:]...)
	m.clampCursor()

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.api.Delete(ctx, id); err != nil {
			return rollbackMsg{snapshot: snapshot, err: err}
		}
		return clearedMsg{}
	}
}

func (m Model) clearCompleted() (tea.Model, tea.Cmd) {
	snapshot := m.snapshot()

	remaining := m.todos[:0:0]
	for _, t := range m.todos {
		if !t.Done {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(m.todos) {
		return m, nil
	}
	m.todos = remaining
	m.clampCursor()

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.api.ClearCompleted(ctx); err != nil {
			return rollbackMsg{snapshot: snapshot, err: err}
		}
		return clearedMsg{}
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		todos, err := m.api.List(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return loadedMsg{todos: todos}
	}
}

func (m Model) createCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		created, err := m.api.Create(ctx, text)
		if err != nil {
			return errMsg{err: err}
		}
		return createdMsg{todo: created}
	}
}

// snapshot copies the todo slice so a later rollback is unaffected by
// in-place edits.
func (m Model) snapshot() []client.Todo {
	out := make([]client.Todo, len(m.todos))
	copy(out, m.todos)
	return out
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var b strings.Builder

	done, remaining := m.counts()
	b.WriteString(titleStyle.Render("Todos"))
	b.WriteString("  ")
	b.WriteString(fmt.Sprintf("%s %d  %s %d  %s %d",
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), remaining,
		mutedStyle.Render("total"), len(m.todos)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("loading…"))
		b.WriteString("\n")
	case len(m.todos) == 0:
		b.WriteString(mutedStyle.Render("Nothing to do. Press a to add a todo."))
		b.WriteString("\n")
	default:
		for i, t := range m.todos {
			box := "☐"
			text := t.Text
			if t.Done {
				box = successStyle.Render("☑")
				text = doneStyle.Render(text)
			}
			prefix := "  "
			if i == m.cursor && !m.adding {
				prefix = selectedStyle.Render("> ")
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, box, text))
		}
	}

	if m.adding {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a add • space toggle • d delete • c clear done • r reload • q quit"))
	b.WriteString("\n")

	return b.String()
}

// counts derives header stats from the list; nothing stored separately.
func (m Model) counts() (done, remaining int) {
	for _, t := range m.todos {
		if t.Done {
			done++
		} else {
			remaining++
		}
	}
	return
}
