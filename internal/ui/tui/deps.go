package tui

import (
	"log/slog"
	"time"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/format"
)

// Calculator is the slice of usecase.Calculator the TUI drives.
type Calculator interface {
	Load() (domain.Summary, error)
	Submit(raw string) (domain.Summary, error)
	Reset() (domain.Summary, error)
	Table() domain.Table
	Breakdown(income float64) []domain.BracketShare
}

type Deps struct {
	Calculator Calculator
	Formatter  *format.Formatter

	// Debounce is the quiet period after the last keystroke; 0 recalculates on every edit.
	Debounce time.Duration

	Logger *slog.Logger
	Debug  bool
}
