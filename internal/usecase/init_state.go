package usecase

import (
	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
)

type InitState struct {
	initializer ports.StateInitializer
}

func NewInitState(initializer ports.StateInitializer) *InitState {
	return &InitState{initializer: initializer}
}

// Execute prepares the state directory named by cfg and returns the config path.
func (uc *InitState) Execute(cfg domain.Config, force bool) (string, error) {
	return uc.initializer.Init(cfg, force)
}
