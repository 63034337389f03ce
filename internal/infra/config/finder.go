package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

// FileName is the project-level config file searched upward from the working directory.
const FileName = "taxcalc.yaml"

// FindFile locates name by walking from startDir up to the filesystem root.
func FindFile(startDir, name string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "config.findfile",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "config.findfile",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	// If a file path was passed, start from its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		candidate := filepath.Join(cur, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "config.findfile",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
