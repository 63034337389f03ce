package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/yamlbrackets"
	"github.com/fdemirciler/tax-calculator-gemini/internal/usecase"
)

func bracketsCmd(a *app) *cobra.Command {
	var outFormat string

	c := &cobra.Command{
		Use:   "brackets",
		Short: "Print the active bracket table",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := a.openSession(sessionOptions{noStore: true})
			if err != nil {
				return err
			}
			return renderBrackets(a.out, s.format, s.table, outFormat)
		},
	}

	c.Flags().StringVar(&outFormat, "format", "table", "Output format: table|markdown|csv")
	c.AddCommand(bracketsValidateCmd(a))
	return c
}

func bracketsValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a YAML bracket table",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			uc := usecase.NewValidateBrackets(yamlbrackets.NewLoader())
			t, err := uc.Execute(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(a.out, "OK (%d brackets, top rate %.0f%%)\n", len(t), t.TopRate()*100)
			return err
		},
	}
}
