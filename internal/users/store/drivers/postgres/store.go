package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/internal/users/store/sqlstore"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrQueryCanceled       = "57014"
	pgErrAdminShutdown       = "57P01"
	pgErrTooManyConnections  = "53300"
	pgErrSerialization       = "40001"
	pgErrDeadlock            = "40P01"
)

// Open connects through the pgx database/sql driver.
func Open(dsn string) (*sqlstore.Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return sqlstore.New(db, Dialect), nil
}

// Dialect is the postgres flavour of the shared SQL store.
var Dialect = sqlstore.Dialect{
	Name:     "postgres",
	Rebind:   sqlstore.DollarRebind,
	Classify: classify,
	Migrate:  migrateUp,
}

func classify(err error) error {
	if pgErr, ok := maybePgError(err); ok {
		switch {
		case pgErr.Code == pgErrUniqueViolation:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		case pgErr.Code == pgErrForeignKeyViolation:
			return fmt.Errorf("%w: %v", store.ErrNotFound, err)
		case strings.HasPrefix(pgErr.Code, "08"),
			pgErr.Code == pgErrQueryCanceled,
			pgErr.Code == pgErrAdminShutdown,
			pgErr.Code == pgErrTooManyConnections,
			pgErr.Code == pgErrSerialization,
			pgErr.Code == pgErrDeadlock:
			return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
		return nil
	}

	var netErr net.Error
	if pgconn.Timeout(err) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func maybePgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
