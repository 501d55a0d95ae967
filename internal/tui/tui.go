// Package tui is a full-screen terminal front end for a blackjack session
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/session"
)

const sidebarWidth = 24

// Transcript collects display output as lines. It is the io.Writer handed
// to the text display, so everything the session prints lands in the log
// pane.
type Transcript struct {
	lines   []string
	partial string
}

// Write implements io.Writer
func (t *Transcript) Write(p []byte) (int, error) {
	text := t.partial + string(p)
	parts := strings.Split(text, "\n")
	t.lines = append(t.lines, parts[:len(parts)-1]...)
	t.partial = parts[len(parts)-1]
	return len(p), nil
}

// Lines returns every complete line written so far
func (t *Transcript) Lines() []string {
	return t.lines
}

// String returns the transcript joined by newlines
func (t *Transcript) String() string {
	return strings.Join(t.lines, "\n")
}

// Model is the Bubble Tea model wrapping one session
type Model struct {
	session    *session.Session
	transcript *Transcript
	logger     *log.Logger

	logViewport viewport.Model
	input       textinput.Model
	focusedPane int // 0 = log, 1 = input

	err      error
	quitting bool

	width       int
	height      int
	initialized bool
}

// NewModel creates a model with an empty transcript. Build the display on
// Transcript() and attach the session with SetSession before running.
func NewModel(logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Type your answer and press enter"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 60
	ti.PromptStyle = PromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		transcript:  &Transcript{},
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		focusedPane: 1,
	}
}

// Transcript returns the writer the display should write to
func (m *Model) Transcript() *Transcript {
	return m.transcript
}

// SetSession attaches the session the model drives
func (m *Model) SetSession(s *session.Session) {
	m.session = s
	m.refreshLog()
}

// Err returns the error that ended the session, if any
func (m *Model) Err() error {
	return m.err
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.session.Quit()
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				if done := m.submit(strings.TrimSpace(m.input.Value())); done {
					m.quitting = true
					return m, tea.Quit
				}
				m.input.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands one answer to the session and reports whether it ended
func (m *Model) submit(answer string) bool {
	fmt.Fprintln(m.transcript, EchoStyle.Render("> "+answer))

	if err := m.session.Handle(answer); err != nil {
		m.logger.Error("Session ended with error", "error", err)
		m.err = err
	}
	m.refreshLog()

	return m.session.Done()
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(m.transcript.String())
	m.logViewport.GotoBottom()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionPane := m.renderActionPane()
	actionHeight := lipgloss.Height(actionPane)

	logWidth := max(m.width-sidebarWidth-4, 1)
	paneHeight := max(m.height-actionHeight-2, 1)

	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneBorder).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(activePaneBorder)
	}

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneBorder).
		Width(sidebarWidth).
		Height(paneHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		logStyle.Render(m.logViewport.View()),
		sidebarStyle.Render(m.renderSidebar()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, actionPane)
}

func (m *Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Blackjack"))
	b.WriteString("\n\n")

	name := m.session.Name()
	if name == "" {
		name = "(new player)"
	}
	b.WriteString(name + "\n")
	b.WriteString(TokensStyle.Render(fmt.Sprintf("Tokens: %d", m.session.Tokens())))
	b.WriteString("\n")

	if r := m.session.Round(); r != nil && r.Bet() > 0 {
		b.WriteString(TokensStyle.Render(fmt.Sprintf("Bet: %d", r.Bet())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Rounds: %d", m.session.Rounds())))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("tab: switch pane"))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("esc: quit"))
	return b.String()
}

func (m *Model) renderActionPane() string {
	var b strings.Builder

	b.WriteString(PromptStyle.Render(m.session.Prompt()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.err.Error()))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(activePaneBorder).
		Width(max(m.width-2, 1)).
		Render(b.String())
}

// Run drives the model in the alternate screen until the session ends or
// ctx is cancelled
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		m.session.Quit()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running TUI: %w", err)
	}
	return m.Err()
}
