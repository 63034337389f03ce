package yamlbrackets

import (
	"fmt"
	"math"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

func MapTable(path string, yt YAMLTable) (domain.Table, error) {
	if len(yt.Brackets) == 0 {
		return nil, invalidField(path, "brackets", "at least one bracket is required")
	}

	table := make(domain.Table, 0, len(yt.Brackets))
	for i, b := range yt.Brackets {
		fieldPrefix := fmt.Sprintf("brackets[%d]", i)
		if b.Rate == nil {
			return nil, invalidField(path, fieldPrefix+".rate", "rate is required")
		}
		if b.Lower == nil {
			return nil, invalidField(path, fieldPrefix+".lower", "lower is required")
		}

		upper := math.Inf(1)
		if b.Upper != nil {
			upper = *b.Upper
		}

		table = append(table, domain.TaxBracket{
			Rate:  *b.Rate,
			Lower: *b.Lower,
			Upper: upper,
		})
	}

	if err := table.Validate(); err != nil {
		return nil, &domain.OpError{
			Op:   "yamlbrackets.validate",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return table, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlbrackets.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
