// Package format renders amounts, rates and bracket rows for terminal output.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

// AboveLabel is shown instead of the upper bound of the unbounded bracket.
const AboveLabel = "Above"

var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
}

// Formatter renders values for one locale and currency.
type Formatter struct {
	unit   currency.Unit
	symbol string

	display *message.Printer
	// input always uses en-US grouping so Normalize reads it back.
	input *message.Printer
}

// New builds a Formatter for a BCP 47 locale and an ISO 4217 currency code.
func New(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %v: %w", locale, err, domain.ErrInvalidConfig)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %v: %w", code, err, domain.ErrInvalidConfig)
	}

	sym, ok := symbols[unit.String()]
	if !ok {
		sym = unit.String() + " "
	}

	return &Formatter{
		unit:    unit,
		symbol:  sym,
		display: message.NewPrinter(tag),
		input:   message.NewPrinter(language.AmericanEnglish),
	}, nil
}

// MustNew is New for fixed, known-good arguments.
func MustNew(locale, code string) *Formatter {
	f, err := New(locale, code)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Formatter) CurrencyCode() string { return f.unit.String() }

// Currency renders v with two decimals and the currency symbol, e.g. "€1,234.50".
func (f *Formatter) Currency(v float64) string {
	if v < 0 {
		return "-" + f.symbol + f.display.Sprintf("%.2f", -v)
	}
	return f.symbol + f.display.Sprintf("%.2f", v)
}

// Number renders v grouped and without decimals.
func (f *Formatter) Number(v float64) string {
	return f.display.Sprintf("%.0f", v)
}

// Percent renders an already-scaled percentage, e.g. 13.23 -> "13.23%".
func (f *Formatter) Percent(p float64) string {
	return f.display.Sprintf("%.2f", p) + "%"
}

// Rate renders a bracket rate fraction as a whole percentage, e.g. 0.12 -> "12%".
func (f *Formatter) Rate(r float64) string {
	return fmt.Sprintf("%.0f%%", r*100)
}

// Input renders an income for the text field: grouped, with every decimal
// domain.FormatAmount keeps, so Normalize reads back the value that is stored.
func (f *Formatter) Input(v float64) string {
	if v == 0 {
		return ""
	}
	whole := f.input.Sprintf("%.0f", math.Trunc(v))
	if _, frac, ok := strings.Cut(domain.FormatAmount(v), "."); ok {
		return whole + "." + frac
	}
	return whole
}

// BracketRow is one display row of the bracket table.
type BracketRow struct {
	From     string
	To       string
	Rate     string
	Taxed    string
	Tax      string
	Marginal bool
}

// Rows renders a breakdown. marginal is the index flagged as the current bracket.
func (f *Formatter) Rows(shares []domain.BracketShare, marginal int) []BracketRow {
	return lo.Map(shares, func(s domain.BracketShare, i int) BracketRow {
		to := AboveLabel
		if !s.Bracket.Unbounded() {
			to = f.Number(s.Bracket.Upper)
		}
		return BracketRow{
			From:     f.Number(s.Bracket.Lower),
			To:       to,
			Rate:     f.Rate(s.Bracket.Rate),
			Taxed:    f.Currency(s.Taxable),
			Tax:      f.Currency(s.Tax),
			Marginal: i == marginal,
		}
	})
}

// TableRows renders the brackets alone, without amounts.
func (f *Formatter) TableRows(t domain.Table) []BracketRow {
	shares := lo.Map(t, func(b domain.TaxBracket, _ int) domain.BracketShare {
		return domain.BracketShare{Bracket: b}
	})
	return f.Rows(shares, -1)
}
