package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/pkg/cryptox"
)

// DefaultStoreTimeout bounds every storage call when none is configured.
const DefaultStoreTimeout = 5 * time.Second

// CredentialStore is the gateway between the flows and the account store. It
// owns password hashing and bounds each storage call with Timeout.
//
// Inside WithTx the callback receives a copy bound to the transaction; use
// that copy for every call until the callback returns.
type CredentialStore struct {
	Store   store.Store
	Hasher  *cryptox.Hasher
	Timeout time.Duration
}

func (c *CredentialStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// WithTx runs fn inside one transaction. Returning an error rolls back every
// write made through tx.
func (c *CredentialStore) WithTx(ctx context.Context, fn func(tx *CredentialStore) error) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.WithTx(ctx, func(t store.Tx) error {
		scoped := *c
		scoped.Store = t
		return fn(&scoped)
	})
}

// HashPassword runs outside any transaction; Argon2id is deliberately slow.
func (c *CredentialStore) HashPassword(password string) (string, error) {
	return c.Hasher.Hash(password)
}

// Create inserts the account. PasswordHash must already be set.
func (c *CredentialStore) Create(ctx context.Context, a domain.Account) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	err := c.Store.Accounts().CreateAccount(ctx, a)
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrDuplicateAccount
	}
	return err
}

func (c *CredentialStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Accounts().UsernameTaken(ctx, domain.NormalizeUsername(username))
}

// FindByUsername matches case-insensitively and returns store.ErrNotFound
// when there is no such account.
func (c *CredentialStore) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Accounts().GetAccountByUsername(ctx, domain.NormalizeUsername(username))
}

// CheckPassword verifies password against the account's stored hash.
func (c *CredentialStore) CheckPassword(a domain.Account, password string) error {
	err := c.Hasher.Verify(password, a.PasswordHash)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cryptox.ErrMismatch):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("verify password for %s: %w", a.ID, err)
	}
}

// CheckUnknown burns the same hashing work as CheckPassword for a username
// that does not exist, and always fails.
func (c *CredentialStore) CheckUnknown(password string) error {
	_ = c.Hasher.VerifyDummy(password)
	return ErrInvalidCredentials
}

func (c *CredentialStore) AddToRoles(ctx context.Context, accountID string, roles []domain.RoleName) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Roles().AddAccountToRoles(ctx, accountID, roles)
}

func (c *CredentialStore) GetRoles(ctx context.Context, accountID string) ([]domain.RoleName, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Roles().GetAccountRoles(ctx, accountID)
}

func (c *CredentialStore) ListRoles(ctx context.Context) ([]domain.Role, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Roles().ListRoles(ctx)
}

func (c *CredentialStore) UsersInRole(ctx context.Context, role domain.RoleName) ([]domain.Account, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Accounts().ListAccountsInRole(ctx, role)
}

func (c *CredentialStore) AllUsers(ctx context.Context) ([]domain.Account, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Accounts().ListAccounts(ctx)
}

func (c *CredentialStore) Sponsor(ctx context.Context, id int64) (domain.Sponsor, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Sponsors().GetSponsor(ctx, id)
}

func (c *CredentialStore) Sponsors(ctx context.Context) ([]domain.Sponsor, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Sponsors().ListSponsors(ctx)
}

// Ping checks the store is reachable.
func (c *CredentialStore) Ping(ctx context.Context) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	return c.Store.Ping(ctx)
}
