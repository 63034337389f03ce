package yamlbrackets

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

// ToDTO is the inverse of MapTable. The unbounded bracket gets no upper key.
func ToDTO(t domain.Table) YAMLTable {
	out := YAMLTable{Brackets: make([]YAMLBracket, 0, len(t))}
	for _, b := range t {
		rate, lower := b.Rate, b.Lower
		yb := YAMLBracket{Rate: &rate, Lower: &lower}
		if !b.Unbounded() {
			upper := b.Upper
			yb.Upper = &upper
		}
		out.Brackets = append(out.Brackets, yb)
	}
	return out
}

// Encode renders t in the format LoadBrackets reads.
func Encode(t domain.Table) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToDTO(t)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
