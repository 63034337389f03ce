package usecase

import (
	"fmt"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
)

type ValidateBrackets struct {
	loader ports.BracketLoader
}

func NewValidateBrackets(l ports.BracketLoader) *ValidateBrackets {
	return &ValidateBrackets{loader: l}
}

// Execute loads the table at path and validates it regardless of the loader.
func (uc *ValidateBrackets) Execute(path string) (domain.Table, error) {
	if path == "" {
		return nil, &domain.OpError{
			Op:   "brackets.validate",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("path is required: %w", domain.ErrInvalidConfig),
		}
	}

	t, err := uc.loader.LoadBrackets(path)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, &domain.OpError{
			Op:   "brackets.validate",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return t, nil
}
