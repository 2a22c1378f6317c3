package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	// Postgres driver, registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL backend behind a Store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store wraps the database handle and hands out repositories.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
	seq     *sequenceCounter
}

// DialectFor picks the backend from a DSN. postgres:// and postgresql://
// URLs go to Postgres, anything else is treated as an SQLite path or URI.
func DialectFor(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open connects to dsn, applies the schema and returns a ready Store.
func Open(dsn string) (*Store, error) {
	return OpenContext(context.Background(), dsn)
}

// OpenContext is Open with a caller-supplied context for the initial
// connection and schema setup.
func OpenContext(ctx context.Context, dsn string) (*Store, error) {
	dialect := DialectFor(dsn)

	driver := "sqlite"
	if dialect == DialectPostgres {
		driver = "pgx"
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dialect == DialectSQLite {
		// One writer at a time; also keeps in-memory databases on a single
		// connection.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	if err := migrate(ctx, db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, dialect: dialect, seq: seq}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB { return s.db }

// Dialect reports which backend the store talks to.
func (s *Store) Dialect() Dialect { return s.dialect }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AttemptRepo returns the timed-test attempt repository.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{db: s.db, seq: s.seq}
}

// VisitRepo returns the activity visit repository.
func (s *Store) VisitRepo() VisitRepo {
	return &visitRepo{db: s.db, seq: s.seq}
}

// LLMCallRepo returns the LLM call log repository.
func (s *Store) LLMCallRepo() LLMCallRepo {
	return &llmCallRepo{db: s.db, seq: s.seq}
}

// Reset deletes all learner progress: attempts and visits. The LLM call log
// is kept.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"attempts", "visits"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func applyPragmas(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LEARNPAD_DB environment variable
// 2. $XDG_DATA_HOME/learnpad/learnpad.db
// 3. ~/.local/share/learnpad/learnpad.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LEARNPAD_DB"); p != "" {
		if DialectFor(p) == DialectPostgres {
			return p, nil
		}
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "learnpad", "learnpad.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
