package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/internal/users/store/sqlstore"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DSN builds a modernc connection string for path. Pragmas are applied per
// connection so every pooled connection enforces foreign keys.
//
// Transactions begin IMMEDIATE: a deferred transaction that reads and then
// writes fails with SQLITE_BUSY when another writer got there first, and
// busy_timeout cannot retry a lock upgrade. Taking the write lock at BEGIN
// makes concurrent writers queue on busy_timeout instead.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_time_format", "sqlite")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// Open opens (creating if needed) the database file at path.
func Open(path string) (*sqlstore.Store, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	return sqlstore.New(db, Dialect), nil
}

// Dialect is the sqlite flavour of the shared SQL store.
var Dialect = sqlstore.Dialect{
	Name:     "sqlite",
	Classify: classify,
	Migrate:  migrateUp,
}

func classify(err error) error {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return nil
	}

	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	// Primary result code lives in the low byte of extended codes.
	switch serr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}
