package usecase

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
)

// LastIncomeKey is the store key holding the last normalized income.
const LastIncomeKey = "lastIncome"

// Persistence failures returned from Load, Submit and Reset wrap one of these.
var (
	ErrLoadIncome = errors.New("load last income")
	ErrSaveIncome = errors.New("save last income")
)

// Calculator normalizes raw input into an income, derives the summary, hands
// it to the sink and persists the value.
//
// Persistence problems never block a calculation. Submit, Reset and Load always
// return a usable Summary; a non-nil error only reports what could not be
// stored or shown.
type Calculator struct {
	table     domain.Table
	maxIncome float64
	store     ports.ValueStore
	sink      ports.DisplaySink
	log       *slog.Logger
}

type CalculatorOption func(*Calculator)

// WithSink sets where every computed summary is shown.
func WithSink(s ports.DisplaySink) CalculatorOption {
	return func(c *Calculator) {
		c.sink = s
	}
}

func WithLogger(l *slog.Logger) CalculatorOption {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCalculator builds a Calculator over a validated table. A nil store disables
// persistence.
func NewCalculator(table domain.Table, maxIncome float64, store ports.ValueStore, opts ...CalculatorOption) *Calculator {
	c := &Calculator{
		table:     table.Clone(),
		maxIncome: maxIncome,
		store:     store,
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns a copy of the active bracket table.
func (c *Calculator) Table() domain.Table {
	return c.table.Clone()
}

// Breakdown splits income across the active brackets.
func (c *Calculator) Breakdown(income float64) []domain.BracketShare {
	return domain.Breakdown(income, c.table)
}

// Submit normalizes raw, computes, shows and persists the result.
func (c *Calculator) Submit(raw string) (domain.Summary, error) {
	income := domain.Normalize(raw, c.maxIncome)
	c.log.Debug("calc.submit", "raw_len", len(raw), "income", income)
	return c.apply(income, true)
}

// Reset sets the income to 0 and persists it.
func (c *Calculator) Reset() (domain.Summary, error) {
	c.log.Debug("calc.reset")
	return c.apply(0, true)
}

// Load restores the persisted income. A missing or corrupt value yields 0;
// a value above the ceiling is clamped. Only store failures are returned.
func (c *Calculator) Load() (domain.Summary, error) {
	income, loadErr := c.loadIncome()
	s, showErr := c.apply(income, false)
	return s, errors.Join(loadErr, showErr)
}

func (c *Calculator) loadIncome() (float64, error) {
	if c.store == nil {
		return 0, nil
	}

	raw, ok, err := c.store.Get(LastIncomeKey)
	if errors.Is(err, domain.ErrCorruptState) {
		c.log.Warn("store.load.corrupt", "key", LastIncomeKey, "err", err)
		return 0, nil
	}
	if err != nil {
		c.log.Error("store.load.failed", "key", LastIncomeKey, "err", err)
		return 0, fmt.Errorf("%w: %w", ErrLoadIncome, err)
	}
	if !ok {
		c.log.Debug("store.load.empty", "key", LastIncomeKey)
		return 0, nil
	}

	v, valid := domain.ParseStoredAmount(raw)
	if !valid {
		c.log.Warn("store.load.corrupt", "key", LastIncomeKey, "value", raw)
		return 0, nil
	}
	if v > c.maxIncome {
		v = c.maxIncome
	}
	c.log.Debug("store.load.ok", "key", LastIncomeKey, "income", v)
	return v, nil
}

func (c *Calculator) apply(income float64, persist bool) (domain.Summary, error) {
	s := domain.Summarize(income, c.table)

	var errs []error
	if c.sink != nil {
		if err := c.sink.Show(s); err != nil {
			c.log.Error("display.show.failed", "err", err)
			errs = append(errs, fmt.Errorf("show summary: %w", err))
		}
	}

	if persist && c.store != nil {
		if err := c.store.Set(LastIncomeKey, domain.FormatAmount(income)); err != nil {
			c.log.Error("store.save.failed", "key", LastIncomeKey, "err", err)
			errs = append(errs, fmt.Errorf("%w: %w", ErrSaveIncome, err))
		}
	}

	c.log.Info("calc.done",
		"income", s.Income,
		"tax", s.Tax,
		"effective_rate", s.EffectiveRatePercent,
		"bracket", s.Bracket,
	)
	return s, errors.Join(errs...)
}
