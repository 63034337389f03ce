package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fdemirciler/tax-calculator-gemini/internal/buildinfo"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/config"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/logger"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ui/tui"
)

// skipConfig marks commands that run without loading configuration.
const skipConfig = "taxcalc/skip-config"

func Execute() {
	a := newApp(os.Stdout)
	err := a.root.Execute()
	a.shutdown()
	if err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all commands of one invocation.
type app struct {
	root *cobra.Command
	out  io.Writer

	configFile string
	cfg        config.Result

	closers []func() error
}

func newRootCmd() *cobra.Command {
	return newApp(os.Stdout).root
}

func newApp(out io.Writer) *app {
	a := &app{out: out}

	cmd := &cobra.Command{
		Use:          "taxcalc",
		Short:        "taxcalc — progressive income tax calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return a.loadConfig(cmd)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := a.openSession(sessionOptions{})
			if err != nil {
				return err
			}

			return tui.Run(tui.Deps{
				Calculator: s.calc,
				Formatter:  s.format,
				Logger:     logger.L(),
				Debug:      a.cfg.Config.Debug,
				Debounce:   a.cfg.Config.Debounce(),
			})
		},
	}
	cmd.SetOut(out)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./taxcalc.yaml, then <state-dir>/config.yaml)")
	pf.Bool("debug", false, "enable verbose logging to <state-dir>/logs/taxcalc.log")
	pf.String("state-dir", "", "directory for config, logs and the persisted income")
	pf.String("store", "", "persistence backend: file|sqlite|memory")
	pf.String("store-path", "", "file used by the selected store backend")
	pf.Float64("max-income", 0, "inputs above this amount are clamped")
	pf.String("brackets-file", "", "YAML bracket table replacing the built-in one")

	cmd.AddCommand(
		calcCmd(a),
		bracketsCmd(a),
		lastCmd(a),
		initCmd(a),
		versionCmd(a),
	)

	a.root = cmd
	return a
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	res, err := config.Load(config.Options{
		File:  a.configFile,
		Flags: cmd.Root().PersistentFlags(),
	})
	if err != nil {
		return err
	}
	a.cfg = res

	cleanup, _ := logger.Setup(logger.Config{
		Root:  res.Config.StateDir,
		Debug: res.Config.Debug,
	})
	if cleanup != nil {
		a.closers = append(a.closers, cleanup)
	}

	logger.L().Debug("config.loaded",
		"file", res.FileUsed,
		"state_dir", res.Config.StateDir,
		"store", string(res.Config.Store),
		"brackets_file", res.Config.BracketsFile,
	)
	return nil
}

// shutdown runs closers in reverse order; the logger closes last.
func (a *app) shutdown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(a.out, buildinfo.String())
			return err
		},
	}
}
