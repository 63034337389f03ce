package ports

import "github.com/fdemirciler/tax-calculator-gemini/internal/domain"

// DisplaySink receives every computed summary (terminal output, TUI state, test fakes).
type DisplaySink interface {
	Show(s domain.Summary) error
}
