package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/format"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/logger"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
)

// writerSink prints every summary it is shown and remembers the first write error.
type writerSink struct {
	w         io.Writer
	f         *format.Formatter
	table     domain.Table
	format    string
	breakdown bool

	err error
}

var _ ports.DisplaySink = (*writerSink)(nil)

func (s *writerSink) Show(sum domain.Summary) error {
	err := printSummary(s.w, s.f, s.table, sum, s.format, s.breakdown)
	if err != nil && s.err == nil {
		s.err = err
	}
	return err
}

func calcCmd(a *app) *cobra.Command {
	var outFormat string
	var breakdown bool
	var noSave bool

	c := &cobra.Command{
		Use:   "calc [INCOME...]",
		Short: "Calculate tax for an income (defaults to the last saved income)",
		Long: "Calculate tax for an income given as free text, e.g. `taxcalc calc 85,000`.\n" +
			"Arguments are joined and normalized: everything but digits and the first '.' is ignored.\n" +
			"Without arguments the last saved income is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSummaryFormat(outFormat); err != nil {
				return err
			}

			var sink *writerSink
			s, err := a.openSession(sessionOptions{
				noStore: noSave && len(args) > 0,
				sink: func(f *format.Formatter, t domain.Table) ports.DisplaySink {
					sink = &writerSink{w: a.out, f: f, table: t, format: outFormat, breakdown: breakdown}
					return sink
				},
			})
			if err != nil {
				return err
			}

			if len(args) == 0 {
				_, err = s.calc.Load()
			} else {
				_, err = s.calc.Submit(strings.Join(args, " "))
			}

			if sink.err != nil {
				return sink.err
			}
			if err != nil {
				// Persistence failures do not invalidate the printed result.
				logger.L().Warn("calc.persist.failed", "err", err)
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	}

	c.Flags().StringVar(&outFormat, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&breakdown, "breakdown", false, "Show the amount taxed in each bracket")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not persist the income")
	return c
}
