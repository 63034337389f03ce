package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var errNoCalculator = errors.New("calculator is not configured")

func cmdLoad(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Calculator == nil {
			return loadedMsg{err: errNoCalculator}
		}
		s, err := deps.Calculator.Load()
		return loadedMsg{summary: s, err: err}
	}
}

// cmdDebounce schedules a debounceMsg; a zero delay fires at once.
func cmdDebounce(d time.Duration, seq int) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return debounceMsg{seq: seq} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

func cmdSubmit(deps Deps, raw string, seq int, reformat bool) tea.Cmd {
	return func() tea.Msg {
		if deps.Calculator == nil {
			return summaryMsg{seq: seq, err: errNoCalculator}
		}
		s, err := deps.Calculator.Submit(raw)
		if err != nil && deps.Logger != nil {
			deps.Logger.Warn("tui.submit.failed", "err", err)
		}
		return summaryMsg{seq: seq, summary: s, reformat: reformat, err: err}
	}
}

func cmdReset(deps Deps, seq int) tea.Cmd {
	return func() tea.Msg {
		if deps.Calculator == nil {
			return summaryMsg{seq: seq, err: errNoCalculator}
		}
		s, err := deps.Calculator.Reset()
		if err != nil && deps.Logger != nil {
			deps.Logger.Warn("tui.reset.failed", "err", err)
		}
		return summaryMsg{seq: seq, summary: s, err: err}
	}
}
