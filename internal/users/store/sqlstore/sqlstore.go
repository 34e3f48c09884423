// Package sqlstore implements store.Store over database/sql. The sqlite and
// postgres drivers share it and only supply a Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/integra-admin/integra/internal/users/store"
)

// Dialect carries the few things that differ between SQL backends.
type Dialect struct {
	Name string

	// Rebind rewrites "?" placeholders. Nil keeps them as-is.
	Rebind func(query string) string

	// Classify maps driver-specific errors onto store sentinels. It returns
	// nil when it does not recognise err.
	Classify func(err error) error

	// Migrate applies the embedded schema to db.
	Migrate func(db *sql.DB) error
}

// DollarRebind turns "?" placeholders into $1, $2, ...
func DollarRebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn binds a queryer to a dialect; every repo goes through it.
type conn struct {
	q queryer
	d Dialect
}

func (c conn) rebind(query string) string {
	if c.d.Rebind == nil {
		return query
	}
	return c.d.Rebind(query)
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := c.q.ExecContext(ctx, c.rebind(query), args...)
	return res, c.mapErr(err)
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := c.q.QueryContext(ctx, c.rebind(query), args...)
	return rows, c.mapErr(err)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.q.QueryRowContext(ctx, c.rebind(query), args...)
}

func (c conn) mapErr(err error) error {
	return mapErr(c.d, err)
}

func mapErr(d Dialect, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if d.Classify != nil {
		if mapped := d.Classify(err); mapped != nil {
			return mapped
		}
	}
	return err
}

var (
	_ store.Store = (*Store)(nil)
	_ store.Tx    = (*txStore)(nil)
)

type Store struct {
	db *sql.DB
	d  Dialect
}

// New wraps an open database. The caller keeps ownership of driver setup.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d}
}

// DB exposes the underlying pool, mainly for tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return mapErr(s.d, s.db.PingContext(ctx))
}

func (s *Store) ApplyMigrations() error {
	if s.d.Migrate == nil {
		return nil
	}
	if err := s.d.Migrate(s.db); err != nil {
		return fmt.Errorf("%s: migrate: %w", s.d.Name, err)
	}
	return nil
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapErr(s.d, err)
	}
	return &txStore{tx: tx, c: conn{q: tx, d: s.d}}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) conn() conn { return conn{q: s.db, d: s.d} }

func (s *Store) Accounts() store.Accounts { return &accountsRepo{c: s.conn()} }
func (s *Store) Roles() store.Roles       { return &rolesRepo{c: s.conn()} }
func (s *Store) Sponsors() store.Sponsors { return &sponsorsRepo{c: s.conn()} }

type txStore struct {
	tx *sql.Tx
	c  conn
}

func (t *txStore) Commit() error {
	return mapErr(t.c.d, t.tx.Commit())
}

func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer pool stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// Migrations must run before a transaction is opened.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Accounts() store.Accounts { return &accountsRepo{c: t.c} }
func (t *txStore) Roles() store.Roles       { return &rolesRepo{c: t.c} }
func (t *txStore) Sponsors() store.Sponsors { return &sponsorsRepo{c: t.c} }
