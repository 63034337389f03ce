package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

type model struct {
	theme Theme
	deps  Deps

	input    textinput.Model
	brackets table.Model

	summary domain.Summary
	loaded  bool

	// seq identifies the latest edit; stale ticks and results are dropped.
	seq int

	toast string
	width int
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	ti := textinput.New()
	ti.Placeholder = "e.g. 85,000"
	ti.Prompt = "› "
	ti.CharLimit = 40
	ti.Width = 24
	ti.Focus()

	bt := table.New(
		table.WithColumns(bracketColumns()),
		table.WithFocused(false),
	)
	bt.SetStyles(t.Table)

	m := model{
		theme:    t,
		deps:     deps,
		input:    ti,
		brackets: bt,
	}
	m.refreshBrackets()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(cmdLoad(m.deps), textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		m.loaded = true
		m.toast = userMessage(msg.err)
		// Edits made before the load returned win over the saved income.
		if m.seq > 0 {
			return m, nil
		}
		m.summary = msg.summary
		m.input.SetValue(m.formatInput(msg.summary.Income))
		m.input.CursorEnd()
		m.refreshBrackets()
		return m, nil

	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, cmdSubmit(m.deps, m.input.Value(), msg.seq, false)

	case summaryMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.summary = msg.summary
		if msg.reformat {
			m.input.SetValue(m.formatInput(msg.summary.Income))
		}
		m.toast = userMessage(msg.err)
		m.refreshBrackets()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		m.input.Blur()
		m.seq++
		return m, cmdSubmit(m.deps, m.input.Value(), m.seq, true)

	case "esc":
		m.input.SetValue("")
		m.seq++
		return m, cmdReset(m.deps, m.seq)
	}

	if !m.input.Focused() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "i", "/":
			cmd := m.input.Focus()
			return m, cmd
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.seq++
	m.toast = ""
	return m, tea.Batch(cmd, cmdDebounce(m.deps.Debounce, m.seq))
}

func (m *model) refreshBrackets() {
	if m.deps.Calculator == nil || m.deps.Formatter == nil {
		return
	}

	brackets := m.deps.Calculator.Table()
	rows := m.deps.Formatter.Rows(
		m.deps.Calculator.Breakdown(m.summary.Income),
		m.summary.Bracket,
	)

	m.brackets.SetRows(toTableRows(rows))
	m.brackets.SetHeight(len(brackets) + 3)
	if m.summary.Bracket >= 0 && m.summary.Bracket < len(brackets) {
		m.brackets.SetCursor(m.summary.Bracket)
	}
}

func (m model) formatInput(v float64) string {
	if m.deps.Formatter == nil {
		return domain.FormatAmount(v)
	}
	return m.deps.Formatter.Input(v)
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("taxcalc") + "\n" +
		m.theme.Subtitle.Render("Progressive income tax calculator") + "\n"

	if m.deps.Formatter == nil {
		return wrap.Render(header + "\n" + "not configured")
	}

	label := "Annual income (" + m.deps.Formatter.CurrencyCode() + ")"
	inputCard := m.theme.Card.Render(m.theme.Subtitle.Render(label) + "\n" + m.input.View())

	results := m.theme.Card.Render(renderSummary(m.theme, m.deps.Formatter, m.summary, m.loaded))

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, inputCard, " ", results))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Card.Render(m.brackets.View()))
	b.WriteString("\n")

	if m.toast != "" {
		width := m.width - 4
		if width <= 0 {
			width = 80
		}
		b.WriteString(m.theme.Toast.Render(clampString(m.toast, width)))
		b.WriteString("\n")
	}

	if m.input.Focused() {
		b.WriteString(m.theme.Help.Render("type to edit • enter calculate • esc clear • ctrl+c quit"))
	} else {
		b.WriteString(m.theme.Help.Render("i or / edit • esc clear • q quit"))
	}

	return wrap.Render(b.String())
}
