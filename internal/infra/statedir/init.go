// Package statedir creates the taxcalc state directory.
package statedir

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fdemirciler/tax-calculator-gemini/internal/app/template"
	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/yamlbrackets"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
)

const (
	ConfigName   = "config.yaml"
	ExampleName  = "brackets.example.yaml"
	templateName = "templates/config.yaml"
)

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.StateInitializer = (*Initializer)(nil)

// Init creates <StateDir>, <StateDir>/logs, a config.yaml seeded from cfg and a
// brackets.example.yaml holding the default table. Existing files are kept
// unless force is set.
func (i *Initializer) Init(cfg domain.Config, force bool) (string, error) {
	root := filepath.Clean(cfg.StateDir)

	for _, d := range []string{root, filepath.Join(root, "logs")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return "", initErr(d, err)
		}
	}

	configPath := filepath.Join(root, ConfigName)
	if err := writeFile(configPath, force, func() ([]byte, error) {
		return renderConfig(cfg)
	}); err != nil {
		return "", err
	}

	examplePath := filepath.Join(root, ExampleName)
	if err := writeFile(examplePath, force, func() ([]byte, error) {
		return yamlbrackets.Encode(domain.DefaultTable())
	}); err != nil {
		return "", err
	}

	return configPath, nil
}

func renderConfig(cfg domain.Config) ([]byte, error) {
	tmpl, err := templatesFS.ReadFile(templateName)
	if err != nil {
		return nil, err
	}

	store := cfg.Store
	if store == "" {
		store = domain.StoreFile
	}

	out, err := template.RenderString(string(tmpl), template.Vars{
		"store":       string(store),
		"max_income":  strconv.FormatFloat(cfg.MaxIncome, 'f', -1, 64),
		"currency":    cfg.Currency,
		"locale":      cfg.Locale,
		"debounce_ms": strconv.Itoa(cfg.DebounceMS),
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func writeFile(path string, force bool, content func() ([]byte, error)) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	b, err := content()
	if err != nil {
		return initErr(path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return initErr(path, err)
	}
	return nil
}

func initErr(path string, err error) error {
	return &domain.OpError{
		Op:   "statedir.init",
		Kind: domain.KindStorage,
		Path: path,
		Err:  fmt.Errorf("%w: %v", domain.ErrStorage, err),
	}
}
