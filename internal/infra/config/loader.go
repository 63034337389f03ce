package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

// EnvPrefix is the prefix of environment overrides: TAXCALC_MAX_INCOME -> max_income.
const EnvPrefix = "TAXCALC_"

// StateConfigName is the config file looked up inside the state directory.
const StateConfigName = "config.yaml"

// Options controls where configuration is read from.
type Options struct {
	// File is an explicit config path (--config). Empty means auto-discovery.
	File string
	// WorkDir is the starting point for the upward taxcalc.yaml search. Defaults to cwd.
	WorkDir string
	// Flags are applied last, only for flags that were explicitly set.
	Flags *pflag.FlagSet
}

// Result is the resolved configuration and the file it came from (if any).
type Result struct {
	Config   domain.Config
	FileUsed string
}

type koanfConfig struct {
	StateDir     string  `koanf:"state_dir"`
	Store        string  `koanf:"store"`
	StorePath    string  `koanf:"store_path"`
	MaxIncome    float64 `koanf:"max_income"`
	Currency     string  `koanf:"currency"`
	Locale       string  `koanf:"locale"`
	DebounceMS   int     `koanf:"debounce_ms"`
	BracketsFile string  `koanf:"brackets_file"`
	Debug        bool    `koanf:"debug"`
}

// DefaultStateDir returns <user config dir>/taxcalc, falling back to ./.taxcalc.
func DefaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return domain.DefaultConfig().StateDir
	}
	return filepath.Join(dir, "taxcalc")
}

// Load resolves configuration with precedence flags > env > file > defaults.
func Load(opts Options) (Result, error) {
	k := koanf.New(".")
	def := domain.DefaultConfig()

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"state_dir":   DefaultStateDir(),
		"store":       string(def.Store),
		"store_path":  "",
		"max_income":  def.MaxIncome,
		"currency":    def.Currency,
		"locale":      def.Locale,
		"debounce_ms": def.DebounceMS,
		"debug":       false,
	}, "."), nil); err != nil {
		return Result{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFile := resolveConfigFile(opts, k.String("state_dir"))
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return Result{}, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindInvalidConfig,
				Path: configFile,
				Err:  err,
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Result{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return Result{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var kc koanfConfig
	if err := k.Unmarshal("", &kc); err != nil {
		return Result{}, &domain.OpError{
			Op:   "config.decode",
			Kind: domain.KindInvalidConfig,
			Path: configFile,
			Err:  err,
		}
	}

	cfg := domain.Config{
		StateDir:     kc.StateDir,
		Store:        domain.StoreBackend(strings.ToLower(strings.TrimSpace(kc.Store))),
		StorePath:    kc.StorePath,
		MaxIncome:    kc.MaxIncome,
		Currency:     strings.ToUpper(strings.TrimSpace(kc.Currency)),
		Locale:       strings.TrimSpace(kc.Locale),
		DebounceMS:   kc.DebounceMS,
		BracketsFile: kc.BracketsFile,
		Debug:        kc.Debug,
	}

	// Paths written in a config file are relative to that file.
	if configFile != "" {
		base := filepath.Dir(configFile)
		if !flagChanged(opts.Flags, "brackets-file") {
			cfg.BracketsFile = resolvePathRelativeTo(cfg.BracketsFile, base)
		}
		if !flagChanged(opts.Flags, "store-path") {
			cfg.StorePath = resolvePathRelativeTo(cfg.StorePath, base)
		}
	}

	if err := Validate(cfg); err != nil {
		return Result{}, &domain.OpError{
			Op:   "config.validate",
			Kind: domain.KindInvalidConfig,
			Path: configFile,
			Err:  err,
		}
	}

	return Result{Config: cfg, FileUsed: configFile}, nil
}

// Validate checks values that would otherwise fail later at runtime.
func Validate(cfg domain.Config) error {
	switch cfg.Store {
	case domain.StoreFile, domain.StoreSQLite, domain.StoreMemory:
	default:
		return fmt.Errorf("store %q: expected file|sqlite|memory: %w", cfg.Store, domain.ErrInvalidConfig)
	}
	if !(cfg.MaxIncome > 0) {
		return fmt.Errorf("max_income must be > 0, got %v: %w", cfg.MaxIncome, domain.ErrInvalidConfig)
	}
	if cfg.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must be >= 0, got %d: %w", cfg.DebounceMS, domain.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.StateDir) == "" {
		return fmt.Errorf("state_dir is required: %w", domain.ErrInvalidConfig)
	}
	if _, err := currency.ParseISO(cfg.Currency); err != nil {
		return fmt.Errorf("currency %q: %v: %w", cfg.Currency, err, domain.ErrInvalidConfig)
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return fmt.Errorf("locale %q: %v: %w", cfg.Locale, err, domain.ErrInvalidConfig)
	}
	return nil
}

// resolveConfigFile picks the file to load.
// Priority: explicit --config > taxcalc.yaml upward from WorkDir > <state_dir>/config.yaml.
func resolveConfigFile(opts Options, defaultStateDir string) string {
	if opts.File != "" {
		return opts.File
	}

	wd := opts.WorkDir
	if wd == "" {
		wd, _ = os.Getwd()
	}
	if wd != "" {
		if found, err := FindFile(wd, FileName); err == nil {
			return found
		}
	}

	stateDir := defaultStateDir
	if v := os.Getenv(EnvPrefix + "STATE_DIR"); v != "" {
		stateDir = v
	}
	if opts.Flags != nil && opts.Flags.Changed("state-dir") {
		if v, err := opts.Flags.GetString("state-dir"); err == nil && v != "" {
			stateDir = v
		}
	}

	candidate := filepath.Join(stateDir, StateConfigName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// flagKey transforms kebab-case flag names into snake_case config keys.
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
