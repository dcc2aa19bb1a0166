package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectNative modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	host     *playground
	result   string
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type callResultMsg struct {
	err    error
	result string
}

func newInteractiveModel(host *playground) *interactiveModel {
	return &interactiveModel{host: host, state: stateSelectNative}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectNative && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectNative && m.selected < len(m.host.catalog)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectNative:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callNative
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callNative

			case stateShowResult:
				m.state = stateSelectNative
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectNative
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectNative
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	sig := m.host.catalog[m.selected]
	m.inputs = make([]textinput.Model, len(sig.params))
	for i, p := range sig.params {
		ti := textinput.New()
		ti.Placeholder = p.typ
		ti.Prompt = p.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callNative() tea.Msg {
	sig := m.host.catalog[m.selected]
	raw := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		raw[i] = input.Value()
	}

	result, err := m.host.call(sig, raw)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: result}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Native Call Console"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectNative:
		b.WriteString("Select a native to call:\n\n")
		for i, sig := range m.host.catalog {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatNative(sig)))
			} else {
				b.WriteString(cursor + m.formatNative(sig))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		sig := m.host.catalog[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", nativeStyle.Render(sig.name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(sig.params[i].typ))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		sig := m.host.catalog[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", nativeStyle.Render(sig.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.arenaStats()))
	return b.String()
}

func (m *interactiveModel) formatNative(sig nativeSig) string {
	return sig.format(func(s string) string { return typeStyle.Render(s) })
}

func (m *interactiveModel) arenaStats() string {
	return fmt.Sprintf("buffers: %d live / %d allocated / %d freed • ledger: %d pending • objects: %d • ticks queued: %d",
		m.host.mem.Live(), m.host.mem.Allocated(), m.host.mem.Freed(),
		m.host.ledger.Depth(), m.host.objects.Len(), m.host.ticks.Pending())
}

func runInteractive(host *playground) error {
	p := tea.NewProgram(newInteractiveModel(host), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
