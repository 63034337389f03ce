package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

func lastCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "last",
		Short: "Print the persisted income",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := a.openSession(sessionOptions{})
			if err != nil {
				return err
			}

			sum, err := s.calc.Load()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(a.out, "%s (%s)\n", domain.FormatAmount(sum.Income), s.format.Currency(sum.Income))
			return err
		},
	}

	c.AddCommand(lastClearCmd(a))
	return c
}

func lastClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the persisted income to 0",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := a.openSession(sessionOptions{})
			if err != nil {
				return err
			}
			if _, err := s.calc.Reset(); err != nil {
				return err
			}

			_, err = fmt.Fprintln(a.out, "Cleared")
			return err
		},
	}
}
