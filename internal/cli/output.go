package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/format"
)

type bracketJSON struct {
	Index int      `json:"index"`
	Rate  float64  `json:"rate"`
	Lower float64  `json:"lower"`
	Upper *float64 `json:"upper"`
}

type shareJSON struct {
	bracketJSON
	Taxable float64 `json:"taxable"`
	Tax     float64 `json:"tax"`
}

type summaryJSON struct {
	Income               float64     `json:"income"`
	Tax                  float64     `json:"tax"`
	EffectiveRatePercent float64     `json:"effective_rate_percent"`
	NetIncome            float64     `json:"net_income"`
	Currency             string      `json:"currency"`
	Bracket              bracketJSON `json:"bracket"`
	Breakdown            []shareJSON `json:"breakdown,omitempty"`
}

func toBracketJSON(i int, b domain.TaxBracket) bracketJSON {
	out := bracketJSON{Index: i, Rate: b.Rate, Lower: b.Lower}
	if !b.Unbounded() {
		upper := b.Upper
		out.Upper = &upper
	}
	return out
}

func checkSummaryFormat(f string) error {
	switch f {
	case "pretty", "", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", f)
	}
}

func printSummary(w io.Writer, f *format.Formatter, t domain.Table, s domain.Summary, outFormat string, breakdown bool) error {
	if err := checkSummaryFormat(outFormat); err != nil {
		return err
	}

	var shares []domain.BracketShare
	if breakdown {
		shares = domain.Breakdown(s.Income, t)
	}

	if outFormat == "json" {
		payload := summaryJSON{
			Income:               s.Income,
			Tax:                  s.Tax,
			EffectiveRatePercent: s.EffectiveRatePercent,
			NetIncome:            s.NetIncome,
			Currency:             f.CurrencyCode(),
		}
		if s.Bracket >= 0 && s.Bracket < len(t) {
			payload.Bracket = toBracketJSON(s.Bracket, t[s.Bracket])
		}
		payload.Breakdown = lo.Map(shares, func(sh domain.BracketShare, i int) shareJSON {
			return shareJSON{bracketJSON: toBracketJSON(i, sh.Bracket), Taxable: sh.Taxable, Tax: sh.Tax}
		})

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Fprintf(w, "Income:          %s\n", f.Currency(s.Income))
	fmt.Fprintf(w, "Tax:             %s\n", f.Currency(s.Tax))
	fmt.Fprintf(w, "Effective rate:  %s\n", f.Percent(s.EffectiveRatePercent))
	fmt.Fprintf(w, "Net income:      %s\n", f.Currency(s.NetIncome))
	if s.Bracket >= 0 && s.Bracket < len(t) {
		b := t[s.Bracket]
		to := format.AboveLabel
		if !b.Unbounded() {
			to = f.Currency(b.Upper)
		}
		fmt.Fprintf(w, "Marginal rate:   %s (%s – %s)\n", f.Rate(b.Rate), f.Currency(b.Lower), to)
	}

	if breakdown {
		fmt.Fprintln(w)
		fmt.Fprintln(w, breakdownTable(f, shares, s.Bracket))
	}
	return nil
}

func breakdownTable(f *format.Formatter, shares []domain.BracketShare, marginal int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"", "From", "To", "Rate", "Taxed", "Tax"})
	for _, r := range f.Rows(shares, marginal) {
		mark := ""
		if r.Marginal {
			mark = "▶"
		}
		tw.AppendRow(table.Row{mark, r.From, r.To, r.Rate, r.Taxed, r.Tax})
	}
	return tw.Render()
}

// renderBrackets prints t as table, markdown or csv.
func renderBrackets(w io.Writer, f *format.Formatter, t domain.Table, outFormat string) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "From", "To", "Rate"})
	for i, r := range f.TableRows(t) {
		tw.AppendRow(table.Row{i + 1, r.From, r.To, r.Rate})
	}

	var out string
	switch outFormat {
	case "table", "":
		out = tw.Render()
	case "md", "markdown":
		out = tw.RenderMarkdown()
	case "csv":
		out = tw.RenderCSV()
	default:
		return fmt.Errorf("unsupported format %q (expected table|markdown|csv)", outFormat)
	}

	_, err := fmt.Fprintln(w, out)
	return err
}
