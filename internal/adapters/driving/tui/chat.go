// Package tui implements the interactive terminal chat client.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driving"
)

// responseMsg carries one completed pipeline round trip back into Update.
type responseMsg struct {
	resp domain.ChatResponse
	err  error
}

// Model is the Bubble Tea model for the chat client. One Model is one
// conversation: the session ID is minted at construction and every
// question lands in the same history.
type Model struct {
	chat      driving.ChatService
	sessionID string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript []string
	status     string
	waiting    bool
	ready      bool
}

// New creates a chat model over the given service.
func New(chat driving.ChatService) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about neural connectivity and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		chat:      chat,
		sessionID: uuid.NewString(),
		input:     ti,
		viewport:  viewport.New(0, 0),
		spinner:   sp,
		status:    "Connected. Ask a question.",
	}
}

// SessionID returns the conversation key for this model.
func (m Model) SessionID() string {
	return m.sessionID
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and response events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + ih + 1 // header, input frame, status
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(strings.Join(m.transcript, "\n"))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.status = "Thinking..."
			m.appendLine(userStyle.Render("You: ") + question)
			return m, tea.Batch(m.spinner.Tick, m.respond(question))
		}

	case responseMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.appendLine(errorStyle.Render("error: " + msg.err.Error()))
			return m, nil
		}
		m.status = "Connected. Ask a question."
		m.appendLine(assistantStyle.Render("Assistant: ") + msg.resp.GeneratedText)
		if table := msg.resp.TableData; table != nil && len(table.Rows) > 0 {
			m.appendLine(tableStyle.Render(renderTable(table)))
		}
		m.appendLine("")
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("sparc-chat")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := m.status
	if m.waiting {
		status = m.spinner.View() + " " + status
	}
	return header + "\n" + transcript + "\n" + input + "\n" + statusStyle.Render(status)
}

// respond runs the pipeline off the UI goroutine.
func (m Model) respond(question string) tea.Cmd {
	chat, sessionID := m.chat, m.sessionID
	return func() tea.Msg {
		resp, err := chat.Respond(context.Background(), domain.ChatRequest{
			SessionID: sessionID,
			Input:     question,
		})
		return responseMsg{resp: resp, err: err}
	}
}

func (m *Model) appendLine(line string) {
	m.transcript = append(m.transcript, line)
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

// renderTable renders the structured block as an indented list. A full
// 16-column table does not fit a terminal; the neuron and its endpoints
// are the useful part.
func renderTable(table *domain.TableData) string {
	col := func(name string) int {
		for i, head := range table.Head {
			if head == name {
				return i
			}
		}
		return -1
	}
	id, from, to := col(domain.FieldNeuronID), col(domain.FieldA), col(domain.FieldB)

	var b strings.Builder
	fmt.Fprintf(&b, "Cited connections (%d):", len(table.Rows))
	for _, row := range table.Rows {
		cell := func(i int) string {
			if i >= 0 && i < len(row) {
				return row[i]
			}
			return domain.FieldAbsent
		}
		fmt.Fprintf(&b, "\n  %s: %s -> %s", cell(id), cell(from), cell(to))
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
