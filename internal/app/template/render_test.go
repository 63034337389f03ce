package template

import (
	"errors"
	"reflect"
	"testing"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

func TestRenderString(t *testing.T) {
	cases := []struct {
		name string
		in   string
		vars Vars
		want string
	}{
		{"no placeholders", "store: file\n", nil, "store: file\n"},
		{"empty input", "", nil, ""},
		{"single", "currency: {{currency}}", Vars{"currency": "EUR"}, "currency: EUR"},
		{"spaces inside braces", "locale: {{ locale }}", Vars{"locale": "en-US"}, "locale: en-US"},
		{"repeated", "{{a}}-{{a}}", Vars{"a": "x"}, "x-x"},
		{"adjacent", "{{a}}{{b}}", Vars{"a": "1", "b": "2"}, "12"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := RenderString(c.in, c.vars)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestRenderString_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"missing", "Hello {{name}}"},
		{"unclosed", "Hello {{name"},
		{"empty", "Hello {{  }}"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := RenderString(c.in, Vars{})
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected invalid_config kind, got %v", err)
			}
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	keys, err := Keys("{{store}} {{currency}} {{store}} {{ locale }}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"store", "currency", "locale"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}

	if _, err := Keys("{{broken"); err == nil {
		t.Fatalf("expected error for unclosed placeholder")
	}
}
