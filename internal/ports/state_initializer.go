package ports

import "github.com/fdemirciler/tax-calculator-gemini/internal/domain"

type StateInitializer interface {
	Init(cfg domain.Config, force bool) (configPath string, err error)
}
