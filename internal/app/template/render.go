// Package template renders the {{key}} placeholders used by generated files.
package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

// Vars maps placeholder keys to their replacement text.
type Vars map[string]string

// RenderString replaces every {{key}} in input with vars[key].
// Whitespace inside the braces is ignored. A missing key, an empty key or an
// unclosed placeholder is an invalid_config error.
func RenderString(input string, vars Vars) (string, error) {
	var out strings.Builder
	out.Grow(len(input))

	err := scan(input, func(literal, key string) error {
		out.WriteString(literal)
		if key == "" {
			return nil
		}
		value, ok := vars[key]
		if !ok {
			return fmt.Errorf("missing value for {{%s}}", key)
		}
		out.WriteString(value)
		return nil
	})
	if err != nil {
		return "", renderErr(err)
	}
	return out.String(), nil
}

// Keys lists the distinct placeholder keys of input in order of first use.
func Keys(input string) ([]string, error) {
	seen := map[string]bool{}
	var keys []string

	err := scan(input, func(_, key string) error {
		if key != "" && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, renderErr(err)
	}
	return keys, nil
}

// scan calls fn with each literal run and the placeholder key that follows it.
// The final call carries the trailing literal and an empty key.
func scan(input string, fn func(literal, key string) error) error {
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			return fn(rest, "")
		}
		literal := rest[:start]
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return errors.New("unclosed placeholder")
		}
		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return errors.New("empty placeholder")
		}
		if err := fn(literal, key); err != nil {
			return err
		}
		rest = rest[end+2:]
	}
}

func renderErr(err error) error {
	return &domain.OpError{
		Op:   "template.render",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidConfig),
	}
}
