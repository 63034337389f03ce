package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/format"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func bracketColumns() []table.Column {
	return []table.Column{
		{Title: "From", Width: 16},
		{Title: "To", Width: 16},
		{Title: "Rate", Width: 6},
		{Title: "Taxed", Width: 16},
	}
}

func toTableRows(rows []format.BracketRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{r.From, r.To, r.Rate, r.Taxed})
	}
	return out
}

func renderSummary(t Theme, f *format.Formatter, s domain.Summary, loaded bool) string {
	if !loaded {
		return t.Help.Render("Loading…")
	}

	lines := []struct {
		label string
		value string
	}{
		{"Effective rate", f.Percent(s.EffectiveRatePercent)},
		{"Tax", f.Currency(s.Tax)},
		{"Net income", f.Currency(s.NetIncome)},
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Label.Render(l.label))
		b.WriteString(t.Value.Render(l.value))
	}
	return b.String()
}
