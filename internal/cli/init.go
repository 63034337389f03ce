package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/statedir"
	"github.com/fdemirciler/tax-calculator-gemini/internal/usecase"
)

func initCmd(a *app) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create the state directory with a starter config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			uc := usecase.NewInitState(statedir.NewInitializer())
			path, err := uc.Execute(a.cfg.Config, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "State directory: %s\n", a.cfg.Config.StateDir)
			fmt.Fprintf(a.out, "Config:          %s\n", path)
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return c
}
