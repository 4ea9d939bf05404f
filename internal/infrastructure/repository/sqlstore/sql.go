// Package sqlstore implements the repositories on database/sql through
// sqlx. The same statements serve Postgres and SQLite; placeholders are
// rebound per driver.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/resilience"
	"github.com/jmoiron/sqlx"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func ParseDialect(raw string) (Dialect, error) {
	switch Dialect(raw) {
	case DialectPostgres, DialectSQLite:
		return Dialect(raw), nil
	default:
		return "", fmt.Errorf("unsupported sql dialect %q", raw)
	}
}

// Store bundles the handle, dialect and breaker shared by repositories.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
	breaker *resilience.CircuitBreaker
}

func NewStore(db *sqlx.DB, dialect Dialect, breaker *resilience.CircuitBreaker) *Store {
	return &Store{db: db, dialect: dialect, breaker: breaker}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

func (s *Store) rebind(query string) string {
	return s.db.Rebind(query)
}

// lockSuffix is the row lock clause for read-modify-write selects.
// SQLite serializes writers per database, so it needs none.
func (s *Store) lockSuffix() string {
	if s.dialect == DialectPostgres {
		return "FOR UPDATE"
	}
	return ""
}

// do runs fn behind the breaker. Not-found and caller aborts do not count
// as dependency failures.
func (s *Store) do(fn func() error) error {
	return s.breaker.Do(fn, isDependencyFailure)
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return s.do(func() error {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// abortError carries an error returned by a mutate callback through the
// transaction unchanged.
type abortError struct {
	err error
}

func (e abortError) Error() string { return e.err.Error() }
func (e abortError) Unwrap() error { return e.err }

func unwrapAbort(err error) error {
	var abort abortError
	if errors.As(err, &abort) {
		return abort.err
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isDependencyFailure(err error) bool {
	if err == nil || isNotFound(err) {
		return false
	}
	var abort abortError
	if errors.As(err, &abort) {
		return false
	}
	return !errors.Is(err, context.Canceled)
}
