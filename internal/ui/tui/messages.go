package tui

import "github.com/fdemirciler/tax-calculator-gemini/internal/domain"

type loadedMsg struct {
	summary domain.Summary
	err     error
}

// debounceMsg fires after the quiet period; only the latest seq is acted on.
type debounceMsg struct {
	seq int
}

type summaryMsg struct {
	seq      int
	summary  domain.Summary
	reformat bool
	err      error
}
