package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
)

// DefaultFileName is used when the store is created from a state directory.
const DefaultFileName = "state.json"

// JSONStore keeps key/value pairs in a single JSON document on disk.
type JSONStore struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

type Option func(*JSONStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

type document struct {
	Values    map[string]string `json:"values"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewJSONStore returns a store backed by the file at path. The file and its
// parent directory are created on the first Set.
func NewJSONStore(path string, opts ...Option) *JSONStore {
	s := &JSONStore{
		path: filepath.Clean(path),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ValueStore = (*JSONStore)(nil)

// Path returns the backing file.
func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := doc.Values[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		// A corrupt document is replaced.
		if !errors.Is(err, domain.ErrCorruptState) {
			return err
		}
		doc = document{}
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	doc.Values[key] = value
	doc.UpdatedAt = s.now().UTC()

	return s.write(doc)
}

func (s *JSONStore) read() (document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document{Values: map[string]string{}}, nil
		}
		return document{}, &domain.OpError{
			Op:   "filestore.read",
			Kind: domain.KindStorage,
			Path: s.path,
			Err:  fmt.Errorf("%w: %v", domain.ErrStorage, err),
		}
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return document{}, &domain.OpError{
			Op:   "filestore.decode",
			Kind: domain.KindStorage,
			Path: s.path,
			Err:  fmt.Errorf("%w: %v", domain.ErrCorruptState, err),
		}
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	return doc, nil
}

func (s *JSONStore) write(doc document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{
			Op:   "filestore.mkdir",
			Kind: domain.KindStorage,
			Path: dir,
			Err:  err,
		}
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &domain.OpError{
			Op:   "filestore.marshal",
			Kind: domain.KindStorage,
			Path: s.path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{
			Op:   "filestore.write",
			Kind: domain.KindStorage,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "filestore.rename",
			Kind: domain.KindStorage,
			Path: s.path,
			Err:  err,
		}
	}
	return nil
}
