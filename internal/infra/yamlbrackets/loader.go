package yamlbrackets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.BracketLoader = (*Loader)(nil)

func (l *Loader) LoadBrackets(path string) (domain.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind, sentinel := domain.KindStorage, domain.ErrStorage
		if errors.Is(err, fs.ErrNotExist) {
			kind, sentinel = domain.KindNotFound, domain.ErrNotFound
		}
		return nil, &domain.OpError{
			Op:   "yamlbrackets.load",
			Kind: kind,
			Path: path,
			Err:  fmt.Errorf("%w: %v", sentinel, err),
		}
	}

	var dto YAMLTable
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return nil, &domain.OpError{
			Op:   "yamlbrackets.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapTable(path, dto)
}

// Resolve returns the table at path, or the default table when path is empty.
func Resolve(l ports.BracketLoader, path string) (domain.Table, error) {
	if path == "" {
		return domain.DefaultTable(), nil
	}
	return l.LoadBrackets(path)
}
