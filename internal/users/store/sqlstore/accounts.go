package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/store"
)

const accountColumns = `a.id, a.username, a.normalized_username, a.email, a.first_name, a.last_name,
	a.sponsor_id, a.password_hash, a.created_at, a.updated_at`

type accountsRepo struct {
	c conn
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO accounts (id, username, normalized_username, email, first_name, last_name,
			sponsor_id, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.NormalizedUsername, a.Email, a.FirstName, a.LastName,
		mapOptionalInt64(a.SponsorID), a.PasswordHash, a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return err
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, normalized string) (domain.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts a WHERE a.normalized_username = ?`, normalized)
}

func (r *accountsRepo) UsernameTaken(ctx context.Context, normalized string) (bool, error) {
	var n int
	err := r.c.queryRow(ctx, `SELECT COUNT(1) FROM accounts WHERE normalized_username = ?`, normalized).Scan(&n)
	if err != nil {
		return false, r.c.mapErr(err)
	}
	return n > 0, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts a ORDER BY a.normalized_username`)
}

func (r *accountsRepo) ListAccountsInRole(ctx context.Context, role domain.RoleName) ([]domain.Account, error) {
	return r.list(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		JOIN account_roles ar ON ar.account_id = a.id
		JOIN roles r ON r.id = ar.role_id
		WHERE r.name = ?
		ORDER BY a.normalized_username`, string(role))
}

func (r *accountsRepo) getOne(ctx context.Context, query string, arg any) (domain.Account, error) {
	a, err := scanAccount(r.c.queryRow(ctx, query, arg))
	if err != nil {
		return domain.Account{}, r.c.mapErr(err)
	}

	roles := &rolesRepo{c: r.c}
	a.Roles, err = roles.GetAccountRoles(ctx, a.ID)
	if err != nil {
		return domain.Account{}, err
	}
	return a, nil
}

func (r *accountsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.c.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, r.c.mapErr(err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, r.c.mapErr(err)
	}
	if len(accounts) == 0 {
		return accounts, nil
	}

	byAccount, err := r.roleIndex(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].Roles = byAccount[accounts[i].ID]
	}
	return accounts, nil
}

// roleIndex loads every account/role link in one pass.
func (r *accountsRepo) roleIndex(ctx context.Context) (map[string][]domain.RoleName, error) {
	rows, err := r.c.query(ctx, `
		SELECT ar.account_id, r.name
		FROM account_roles ar
		JOIN roles r ON r.id = ar.role_id
		ORDER BY ar.account_id, r.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.RoleName)
	for rows.Next() {
		var accountID, name string
		if err := rows.Scan(&accountID, &name); err != nil {
			return nil, r.c.mapErr(err)
		}
		out[accountID] = append(out[accountID], domain.RoleName(name))
	}
	return out, r.c.mapErr(rows.Err())
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (domain.Account, error) {
	var (
		a         domain.Account
		sponsorID sql.NullInt64
	)
	err := s.Scan(&a.ID, &a.Username, &a.NormalizedUsername, &a.Email, &a.FirstName, &a.LastName,
		&sponsorID, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, store.ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}
	a.SponsorID = mapNullInt64Ptr(sponsorID)
	return a, nil
}

func mapNullInt64Ptr(n sql.NullInt64) *int64 {
	if n.Valid {
		v := n.Int64
		return &v
	}
	return nil
}

func mapOptionalInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
