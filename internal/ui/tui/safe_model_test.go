package tui

import (
	"testing"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/format"
)

// panicCalc panics from Table once armed.
type panicCalc struct {
	armed bool
}

func (p *panicCalc) Load() (domain.Summary, error) { return domain.Summary{}, nil }
func (p *panicCalc) Submit(string) (domain.Summary, error) { return domain.Summary{}, nil }
func (p *panicCalc) Reset() (domain.Summary, error) { return domain.Summary{}, nil }
func (p *panicCalc) Breakdown(float64) []domain.BracketShare {
	return domain.Breakdown(0, domain.DefaultTable())
}

func (p *panicCalc) Table() domain.Table {
	if p.armed {
		panic("boom")
	}
	return domain.DefaultTable()
}

func TestSafeModel_RecoversFromUpdatePanic(t *testing.T) {
	calc := &panicCalc{}
	deps := Deps{Calculator: calc, Formatter: format.MustNew("en-US", "EUR")}
	s := wrapSafe(newModel(deps), nil)

	calc.armed = true
	next, cmd := s.Update(loadedMsg{})
	if cmd != nil {
		t.Fatalf("expected no command after a panic")
	}

	sm, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if sm.m.toast != "Unexpected error (see logs)" {
		t.Fatalf("unexpected toast %q", sm.m.toast)
	}

	calc.armed = false
	if out := sm.View(); out == "" {
		t.Fatalf("expected view to render after recovery")
	}
}

func TestSafeModel_DebugToastIncludesPanic(t *testing.T) {
	calc := &panicCalc{}
	deps := Deps{Calculator: calc, Formatter: format.MustNew("en-US", "EUR"), Debug: true}
	s := wrapSafe(newModel(deps), nil)

	calc.armed = true
	next, _ := s.Update(loadedMsg{})
	if got := next.(safeModel).m.toast; got != "Unexpected error: boom" {
		t.Fatalf("unexpected toast %q", got)
	}
}
