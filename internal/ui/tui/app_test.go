package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/format"
	"github.com/fdemirciler/tax-calculator-gemini/internal/infra/memstore"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
	"github.com/fdemirciler/tax-calculator-gemini/internal/usecase"
)

type brokenStore struct{}

func (brokenStore) Get(_ string) (string, bool, error) { return "", false, nil }

func (brokenStore) Set(_, _ string) error {
	return &domain.OpError{Op: "test.set", Kind: domain.KindStorage, Err: domain.ErrStorage}
}

func testDeps(store ports.ValueStore) Deps {
	return Deps{
		Calculator: usecase.NewCalculator(domain.DefaultTable(), domain.DefaultMaxIncome, store),
		Formatter:  format.MustNew("en-US", "EUR"),
		Debounce:   300 * time.Millisecond,
	}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(model)
	if !ok {
		t.Fatalf("expected model, got %T", next)
	}
	return mm, cmd
}

// loadedModel returns a model that has processed its initial load.
func loadedModel(t *testing.T, deps Deps) model {
	t.Helper()
	m := newModel(deps)
	m, _ = update(t, m, cmdLoad(deps)())
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, key(string(r)))
	}
	return m
}

func TestModel_LoadPrefillsInput(t *testing.T) {
	store := memstore.New()
	_ = store.Set(usecase.LastIncomeKey, "20550")

	m := loadedModel(t, testDeps(store))

	if got := m.input.Value(); got != "20,550" {
		t.Fatalf("expected grouped prefill, got %q", got)
	}
	if m.summary.Tax != 2055 {
		t.Fatalf("expected tax 2055, got %v", m.summary.Tax)
	}
	if !m.input.Focused() {
		t.Fatalf("expected input to be focused on start")
	}
}

func TestModel_LoadKeepsEarlierEdits(t *testing.T) {
	store := memstore.New()
	_ = store.Set(usecase.LastIncomeKey, "20550")
	deps := testDeps(store)

	m := newModel(deps)
	m = typeText(t, m, "5")
	m, _ = update(t, m, cmdLoad(deps)())

	if !m.loaded {
		t.Fatalf("expected model to be marked loaded")
	}
	if got := m.input.Value(); got != "5" {
		t.Fatalf("expected typed value to survive the load, got %q", got)
	}
	if m.summary.Income != 0 {
		t.Fatalf("expected saved income not to replace the pending edit, got %+v", m.summary)
	}
}

func TestModel_TypingIsDebounced(t *testing.T) {
	m := loadedModel(t, testDeps(memstore.New()))

	m = typeText(t, m, "10")
	if m.seq != 2 {
		t.Fatalf("expected seq 2 after two edits, got %d", m.seq)
	}

	if _, cmd := update(t, m, debounceMsg{seq: 1}); cmd != nil {
		t.Fatalf("stale debounce tick should be ignored")
	}

	m2, cmd := update(t, m, debounceMsg{seq: 2})
	if cmd == nil {
		t.Fatalf("expected latest tick to trigger a calculation")
	}
	m2, _ = update(t, m2, cmd())

	if m2.summary.Income != 10 || m2.summary.Tax != 1 {
		t.Fatalf("unexpected summary: %+v", m2.summary)
	}
	if m2.input.Value() != "10" {
		t.Fatalf("debounced calculation must not rewrite the input, got %q", m2.input.Value())
	}
}

func TestModel_EnterCalculatesAndReformats(t *testing.T) {
	store := memstore.New()
	m := loadedModel(t, testDeps(store))
	m = typeText(t, m, "100000")

	m, cmd := update(t, m, key("enter"))
	if m.input.Focused() {
		t.Fatalf("expected enter to blur the input")
	}
	if cmd == nil {
		t.Fatalf("expected enter to submit immediately")
	}
	m, _ = update(t, m, cmd())

	if m.input.Value() != "100,000" {
		t.Fatalf("expected reformatted input, got %q", m.input.Value())
	}
	if m.summary.Tax != 13233.66 || m.summary.EffectiveRatePercent != 13.23 {
		t.Fatalf("unexpected summary: %+v", m.summary)
	}
	if m.brackets.Cursor() != 2 {
		t.Fatalf("expected marginal bracket 2 highlighted, got %d", m.brackets.Cursor())
	}
	if v, _, _ := store.Get(usecase.LastIncomeKey); v != "100000" {
		t.Fatalf("expected persisted 100000, got %q", v)
	}
}

func TestModel_EnterKeepsEveryDecimal(t *testing.T) {
	store := memstore.New()
	m := loadedModel(t, testDeps(store))
	m = typeText(t, m, "1234.567")

	m, cmd := update(t, m, key("enter"))
	m, _ = update(t, m, cmd())

	if m.input.Value() != "1,234.567" {
		t.Fatalf("expected reformatted input with all decimals, got %q", m.input.Value())
	}
	if v, _, _ := store.Get(usecase.LastIncomeKey); v != "1234.567" {
		t.Fatalf("expected persisted 1234.567, got %q", v)
	}
	if got := domain.Normalize(m.input.Value(), domain.DefaultMaxIncome); got != m.summary.Income {
		t.Fatalf("field reads back as %v, summary income is %v", got, m.summary.Income)
	}
}

func TestModel_StaleSummaryIsDropped(t *testing.T) {
	m := loadedModel(t, testDeps(memstore.New()))
	m = typeText(t, m, "5")

	m, _ = update(t, m, summaryMsg{seq: m.seq - 1, summary: domain.Summary{Income: 999}})
	if m.summary.Income != 0 {
		t.Fatalf("stale summary should be ignored, got %+v", m.summary)
	}
}

func TestModel_EscClearsAndPersistsZero(t *testing.T) {
	store := memstore.New()
	_ = store.Set(usecase.LastIncomeKey, "20550")
	m := loadedModel(t, testDeps(store))

	m, cmd := update(t, m, key("esc"))
	if m.input.Value() != "" {
		t.Fatalf("expected cleared input, got %q", m.input.Value())
	}
	m, _ = update(t, m, cmd())

	if m.summary != (domain.Summary{Bracket: 0}) {
		t.Fatalf("expected zero summary, got %+v", m.summary)
	}
	if v, _, _ := store.Get(usecase.LastIncomeKey); v != "0" {
		t.Fatalf("expected persisted 0, got %q", v)
	}
}

func TestModel_KeysWhileBlurred(t *testing.T) {
	m := loadedModel(t, testDeps(memstore.New()))
	m, _ = update(t, m, key("enter"))

	if _, cmd := update(t, m, key("q")); cmd == nil {
		t.Fatalf("expected q to quit when blurred")
	} else if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	m, _ = update(t, m, key("i"))
	if !m.input.Focused() {
		t.Fatalf("expected i to refocus the input")
	}

	m, _ = update(t, m, key("enter"))
	m, _ = update(t, m, key("/"))
	if !m.input.Focused() {
		t.Fatalf("expected / to refocus the input")
	}
}

func TestModel_QTypesWhileFocused(t *testing.T) {
	m := loadedModel(t, testDeps(memstore.New()))

	m, cmd := update(t, m, key("q"))
	if m.input.Value() != "q" {
		t.Fatalf("expected q in the input, got %q", m.input.Value())
	}
	if cmd == nil {
		t.Fatalf("expected a debounce command")
	}
}

func TestModel_CtrlCAlwaysQuits(t *testing.T) {
	m := loadedModel(t, testDeps(memstore.New()))

	_, cmd := update(t, m, key("ctrl+c"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestModel_StoreFailureShowsToast(t *testing.T) {
	m := loadedModel(t, testDeps(brokenStore{}))
	m = typeText(t, m, "20550")

	m, cmd := update(t, m, key("enter"))
	m, _ = update(t, m, cmd())

	if m.summary.Tax != 2055 {
		t.Fatalf("expected result despite store failure, got %+v", m.summary)
	}
	if m.toast != "Could not save the income (see logs)" {
		t.Fatalf("unexpected toast %q", m.toast)
	}
	if !strings.Contains(m.View(), m.toast) {
		t.Fatalf("expected toast in view")
	}
}

func TestModel_View(t *testing.T) {
	store := memstore.New()
	_ = store.Set(usecase.LastIncomeKey, "100000")
	m := loadedModel(t, testDeps(store))

	out := m.View()
	for _, want := range []string{"Annual income (EUR)", "Effective rate", "13.23%", "€13,233.66", "€86,766.34", "Above", "37%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCmdDebounce_ZeroDelayFiresImmediately(t *testing.T) {
	msg := cmdDebounce(0, 3)()
	if msg != (debounceMsg{seq: 3}) {
		t.Fatalf("expected debounceMsg{3}, got %#v", msg)
	}
}

func TestModel_NilCalculator(t *testing.T) {
	deps := Deps{Formatter: format.MustNew("en-US", "EUR")}
	m := loadedModel(t, deps)
	if m.toast != "Calculator is not configured" {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}
