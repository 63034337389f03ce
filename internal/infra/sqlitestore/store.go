package sqlitestore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/fdemirciler/tax-calculator-gemini/internal/domain"
	"github.com/fdemirciler/tax-calculator-gemini/internal/ports"
)

// DefaultFileName is used when the store is created from a state directory.
const DefaultFileName = "state.db"

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store keeps key/value pairs in the kv table.
type Store struct {
	db   *sqlx.DB
	path string
	now  func() time.Time
}

type Option func(*Store)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

var _ ports.ValueStore = (*Store)(nil)

// Open connects to the database file at path and applies pending migrations.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path))
	if err != nil {
		return nil, &domain.OpError{
			Op:   "sqlitestore.open",
			Kind: domain.KindStorage,
			Path: path,
			Err:  fmt.Errorf("connecting to db: %w", err),
		}
	}

	db.SetMaxOpenConns(1)

	if err := migrate(db.DB); err != nil {
		db.Close()
		return nil, &domain.OpError{
			Op:   "sqlitestore.migrate",
			Kind: domain.KindStorage,
			Path: path,
			Err:  err,
		}
	}

	s := &Store{db: db, path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return fmt.Errorf("setting dialect for migrations: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Close terminates the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing sqlite store: %w", err)
	}
	return nil
}

func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &domain.OpError{
			Op:   "sqlitestore.get",
			Kind: domain.KindStorage,
			Path: s.path,
			Err:  fmt.Errorf("getting %s: %w", key, err),
		}
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	query := `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.Exec(query, key, value, s.now().UTC()); err != nil {
		return &domain.OpError{
			Op:   "sqlitestore.set",
			Kind: domain.KindStorage,
			Path: s.path,
			Err:  fmt.Errorf("setting %s: %w", key, err),
		}
	}
	return nil
}
