// Package console is the interactive front end of the diagnostic
// shell: a prompt, a scrollback view, and command history, with each
// submitted line handed to the shell's dispatcher.
package console

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/embtools/mcudiag/internal/shell"
	"github.com/embtools/mcudiag/internal/target"
	"github.com/embtools/mcudiag/internal/tui"
	"github.com/embtools/mcudiag/utils"
)

// Start runs the interactive console until the user quits.
func Start(t target.Target, sh *shell.Shell) error {
	program := tea.NewProgram(
		initialModel(t, sh),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // wheel scrolling in the scrollback
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}

type Model struct {
	target target.Target
	shell  *shell.Shell

	input textinput.Model
	view  viewport.Model
	help  help.Model

	scrollback strings.Builder
	history    []string
	histIdx    int

	width  int
	height int
	ready  bool
}

func initialModel(t target.Target, sh *shell.Shell) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = tui.PromptStyle
	input.Placeholder = "help"
	input.Focus()

	return &Model{
		target: t,
		shell:  sh,
		input:  input,
		view:   viewport.New(0, 0),
		help:   help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Submit):
			return m, m.runLine(m.input.Value())

		case key.Matches(msg, keys.HistPrev):
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.HistNext):
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.SetValue("")
			}
			return m, nil

		case key.Matches(msg, keys.Clear):
			m.scrollback.Reset()
			m.view.SetContent("")
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.view.ViewUp()
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.view.ViewDown()
			return m, nil
		}

		// everything else is text entry
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runLine executes one console line and appends its output to the
// scrollback.
func (m *Model) runLine(line string) tea.Cmd {
	line = strings.TrimSpace(line)
	m.input.SetValue("")
	if line == "" {
		return nil
	}

	if line == "exit" || line == "quit" {
		return tea.Quit
	}

	m.history = append(m.history, line)
	m.histIdx = len(m.history)

	m.scrollback.WriteString(tui.PromptStyle.Render("> ") + tui.TextStyle.Render(line) + "\n")

	var out bytes.Buffer
	err := m.shell.Dispatch(line, &out)
	m.scrollback.Write(out.Bytes())
	switch {
	case errors.Is(err, shell.ErrUnknownCommand):
		m.scrollback.WriteString(tui.MutedStyle.Render("unknown command, try 'help'") + "\n")
	case err != nil:
		m.scrollback.WriteString(tui.CriticalStyle.Render(err.Error()) + "\n")
	}

	m.view.SetContent(m.scrollback.String())
	m.view.GotoBottom()
	return nil
}

func (m *Model) layout() {
	header := m.renderHeader()
	headerHeight := lipgloss.Height(header)
	helpHeight := lipgloss.Height(m.help.View(keys))

	// header + scrollback + prompt line + help bar
	viewHeight := m.height - headerHeight - 1 - helpHeight
	viewHeight = max(viewHeight, 1)

	m.view.Width = m.width
	m.view.Height = viewHeight
	m.view.SetContent(m.scrollback.String())
	m.view.GotoBottom()

	m.input.Width = m.width - len(m.input.Prompt) - 1
}

func (m *Model) View() string {
	if !m.ready {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.view.View(),
		m.input.View(),
		m.help.View(keys),
	)
}

func (m *Model) renderHeader() string {
	info := m.target.Info()
	board := info.Board
	if board == "" {
		board = "target"
	}

	capacity := m.target.MaxHeapAddr() - m.target.HeapStart()
	used := m.target.HeapTop() - m.target.HeapStart()

	ratio := 0.0
	if capacity > 0 {
		ratio = float64(used) / float64(capacity)
	}
	barColor := tui.GoodColor
	if ratio > 0.85 {
		barColor = tui.CriticalColor
	}

	title := fmt.Sprintf("mcudiag console - %s", board)
	if info.Build != "" {
		title += fmt.Sprintf(" (%s)", info.Build)
	}
	heapLine := fmt.Sprintf("heap %s of %s %s",
		utils.MemorySize(used), utils.MemorySize(capacity),
		tui.UsageBar(ratio, 20, barColor))

	separator := tui.MutedStyle.Render(strings.Repeat("─", max(m.width, 1)))

	return lipgloss.JoinVertical(lipgloss.Left,
		tui.HeaderStyle.Width(m.width).Render(title+" • "+heapLine),
		separator,
	)
}
