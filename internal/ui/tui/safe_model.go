package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// safeModel keeps the program alive when Update or View panics.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				"where", "tui.update",
				"msg_type", fmt.Sprintf("%T", msg),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)

			// Drop any in-flight calculation and keep what is on screen.
			s.m.seq++
			s.m.toast = panicToast(r, s.m.deps.Debug)
			tm = s
			cmd = nil
		}
	}()

	inner, c := s.m.Update(msg)

	if mm, ok := inner.(model); ok {
		s.m = mm
	} else if sm, ok := inner.(safeModel); ok {
		s = sm
	}

	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				"where", "tui.view",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			out = panicToast(r, s.m.deps.Debug)
		}
	}()
	return s.m.View()
}

func panicToast(r any, debugMode bool) string {
	if debugMode {
		return fmt.Sprintf("Unexpected error: %v", r)
	}
	return "Unexpected error (see logs)"
}

var _ tea.Model = (*safeModel)(nil)
