package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/format"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/filestore"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/logger"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/memstore"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/sqlitestore"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/yamlbrackets"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
	"github.com/fdemirciler/tax-calculator-gemini/internal/usecase"
)

type session struct {
	cfg    domain.Config
	table  domain.Table
	store  ports.ValueStore
	calc   *usecase.Calculator
	format *format.Formatter
}

type sessionOptions struct {
	// noStore opens the session without a persistence backend.
	noStore bool
	sink    func(f *format.Formatter, t domain.Table) ports.DisplaySink
}

// openSession wires the active table, store, formatter and calculator.
// Closers are registered on a.
func (a *app) openSession(opts sessionOptions) (*session, error) {
	cfg := a.cfg.Config

	table, err := yamlbrackets.Resolve(yamlbrackets.NewLoader(), cfg.BracketsFile)
	if err != nil {
		return nil, err
	}

	f, err := format.New(cfg.Locale, cfg.Currency)
	if err != nil {
		return nil, err
	}

	var store ports.ValueStore
	if !opts.noStore {
		s, closeFn, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		store = s
		a.closers = append(a.closers, closeFn)
	}

	calcOpts := []usecase.CalculatorOption{usecase.WithLogger(logger.L())}
	if opts.sink != nil {
		calcOpts = append(calcOpts, usecase.WithSink(opts.sink(f, table)))
	}

	return &session{
		cfg:    cfg,
		table:  table,
		store:  store,
		calc:   usecase.NewCalculator(table, cfg.MaxIncome, store, calcOpts...),
		format: f,
	}, nil
}

func openStore(cfg domain.Config) (ports.ValueStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case domain.StoreMemory:
		return memstore.New(), noop, nil

	case domain.StoreSQLite:
		path := storePath(cfg, sqlitestore.DefaultFileName)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, &domain.OpError{Op: "cli.openstore", Kind: domain.KindStorage, Path: path, Err: err}
		}
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case domain.StoreFile, "":
		return filestore.NewJSONStore(storePath(cfg, filestore.DefaultFileName)), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q: %w", cfg.Store, domain.ErrInvalidConfig)
	}
}

// storePath is store_path when set, else <state_dir>/<name>.
func storePath(cfg domain.Config, name string) string {
	if cfg.StorePath != "" {
		return filepath.Clean(cfg.StorePath)
	}
	return filepath.Join(cfg.StateDir, name)
}
