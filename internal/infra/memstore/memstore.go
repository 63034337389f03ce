package memstore

import (
	"sync"

	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
)

// Store is an in-memory ValueStore. Values are lost when the process exits.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

func New() *Store {
	return &Store{values: map[string]string{}}
}

var _ ports.ValueStore = (*Store)(nil)

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
