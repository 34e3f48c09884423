package store

import (
	"context"
	"errors"

	"github.com/integra-admin/integra/internal/users/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable marks transient failures (deadline, busy database, lost
	// connection). Callers may retry; it is never a definitive rejection.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are methods so a Tx-scoped Store hands out
// repos bound to the same transaction.
type Store interface {
	Accounts() Accounts
	Roles() Roles
	Sponsors() Sponsors

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// commit boundary for every multi-step write.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new account (id is provided by the app via ULID).
	// A clash on the normalized username returns ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	// GetAccountByUsername looks up by normalized username.
	GetAccountByUsername(ctx context.Context, normalized string) (domain.Account, error)

	UsernameTaken(ctx context.Context, normalized string) (bool, error)

	// ListAccounts returns every account with roles, ordered by username.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccountsInRole returns accounts holding role, ordered by username.
	ListAccountsInRole(ctx context.Context, role domain.RoleName) ([]domain.Account, error)
}

type Roles interface {
	// ListRoles returns the seeded vocabulary ordered by name.
	ListRoles(ctx context.Context) ([]domain.Role, error)

	GetRoleByName(ctx context.Context, name domain.RoleName) (domain.Role, error)

	// AddAccountToRoles links the account to each role. Existing links are
	// kept; an unknown role returns ErrNotFound.
	AddAccountToRoles(ctx context.Context, accountID string, roles []domain.RoleName) error

	// GetAccountRoles returns the account's role names ordered by name.
	GetAccountRoles(ctx context.Context, accountID string) ([]domain.RoleName, error)
}

type Sponsors interface {
	GetSponsor(ctx context.Context, id int64) (domain.Sponsor, error)
	ListSponsors(ctx context.Context) ([]domain.Sponsor, error)
}
