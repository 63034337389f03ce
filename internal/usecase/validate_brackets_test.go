package usecase

import (
	"errors"
	"math"
	"testing"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
)

type fakeBracketLoader struct {
	table domain.Table
	err   error
	calls int
}

func (f *fakeBracketLoader) LoadBrackets(_ string) (domain.Table, error) {
	f.calls++
	return f.table, f.err
}

type fakeInitializer struct {
	gotCfg   domain.Config
	gotForce bool
}

func (f *fakeInitializer) Init(cfg domain.Config, force bool) (string, error) {
	f.gotCfg = cfg
	f.gotForce = force
	return cfg.StateDir + "/config.yaml", nil
}

func TestValidateBrackets_Execute(t *testing.T) {
	loader := &fakeBracketLoader{table: domain.DefaultTable()}
	got, err := NewValidateBrackets(loader).Execute("brackets.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("expected 7 brackets, got %d", len(got))
	}
}

func TestValidateBrackets_RequiresPath(t *testing.T) {
	loader := &fakeBracketLoader{}
	_, err := NewValidateBrackets(loader).Execute("")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config kind, got %v", err)
	}
	if loader.calls != 0 {
		t.Fatalf("loader should not be called without a path")
	}
}

func TestValidateBrackets_RevalidatesLoaderOutput(t *testing.T) {
	loader := &fakeBracketLoader{table: domain.Table{
		{Rate: 0.1, Lower: 0, Upper: 100},
		{Rate: 0.2, Lower: 500, Upper: math.Inf(1)},
	}}

	_, err := NewValidateBrackets(loader).Execute("gap.yaml")
	if !errors.Is(err, domain.ErrInvalidBrackets) {
		t.Fatalf("expected ErrInvalidBrackets, got %v", err)
	}
}

func TestValidateBrackets_PropagatesLoaderError(t *testing.T) {
	loadErr := &domain.OpError{Op: "test.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	_, err := NewValidateBrackets(&fakeBracketLoader{err: loadErr}).Execute("missing.yaml")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found kind, got %v", err)
	}
}

func TestInitState_Execute(t *testing.T) {
	fi := &fakeInitializer{}
	cfg := domain.DefaultConfig()
	cfg.StateDir = "/tmp/state"

	path, err := NewInitState(fi).Execute(cfg, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/tmp/state/config.yaml" || !fi.gotForce || fi.gotCfg.StateDir != "/tmp/state" {
		t.Fatalf("unexpected init call: path=%s cfg=%+v force=%v", path, fi.gotCfg, fi.gotForce)
	}
}
