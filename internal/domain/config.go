package domain

import "time"

// StoreBackend selects the persistence adapter for the last income.
type StoreBackend string

const (
	StoreFile   StoreBackend = "file"
	StoreSQLite StoreBackend = "sqlite"
	StoreMemory StoreBackend = "memory"
)

// Config represents the resolved taxcalc configuration.
type Config struct {
	StateDir string
	Store    StoreBackend

	// StorePath overrides the default file for the selected backend.
	StorePath string

	MaxIncome  float64
	Currency   string
	Locale     string
	DebounceMS int

	// BracketsFile points to a YAML bracket table replacing DefaultTable.
	BracketsFile string

	Debug bool
}

// DefaultConfig provides sane defaults if the config file is partially missing.
func DefaultConfig() Config {
	return Config{
		StateDir:   ".taxcalc",
		Store:      StoreFile,
		MaxIncome:  DefaultMaxIncome,
		Currency:   "EUR",
		Locale:     "en-US",
		DebounceMS: 300,
	}
}

// Debounce returns the quiet period the TUI waits before recalculating.
func (c Config) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return 0
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}
