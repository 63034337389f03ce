package tui

import (
	"errors"

	"github.com/fdemirciler/tax-calculator-gemini/internal/usecase"
)

// userMessage maps an error to a one-line toast. It returns "" for nil.
func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, usecase.ErrLoadIncome):
		return "Could not load the saved income (starting at 0)"
	case errors.Is(err, usecase.ErrSaveIncome):
		return "Could not save the income (see logs)"
	case errors.Is(err, errNoCalculator):
		return "Calculator is not configured"
	}
	return "Unexpected error (see logs)"
}
