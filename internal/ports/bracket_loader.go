package ports

import "github.com/fdemirciler/tax-calculator-gemini/internal/domain"

// BracketLoader loads a bracket table from a source (e.g., a YAML file).
type BracketLoader interface {
	LoadBrackets(path string) (domain.Table, error)
}
