package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/pkg/slogx"
	"github.com/integra-admin/integra/pkg/usersdk"
)

type RolesService struct {
	Credentials *CredentialStore
}

// ListRoles returns the stored role vocabulary.
func (s *RolesService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.Credentials.ListRoles(ctx)
}

// AssignRoles adds roles to an existing account in one transaction and
// returns the account with its resulting role set.
func (s *RolesService) AssignRoles(ctx context.Context, username string, names []string) (domain.Account, error) {
	if err := (usersdk.AssignRolesRequest{Roles: names}).Validate(); err != nil {
		if fields := usersdk.FieldErrors(err); fields != nil {
			return domain.Account{}, &ValidationError{Fields: fields}
		}
		return domain.Account{}, err
	}

	roles := make([]domain.RoleName, 0, len(names))
	for _, n := range names {
		r, err := domain.ParseRoleName(n)
		if err != nil {
			return domain.Account{}, invalidField("roles", fmt.Sprintf("unknown role %q; expected one of: %s",
				n, strings.Join(domain.RoleStrings(domain.Vocabulary()), ", ")))
		}
		roles = append(roles, r)
	}

	var account domain.Account
	err := s.Credentials.WithTx(ctx, func(tx *CredentialStore) error {
		a, err := tx.FindByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.AddToRoles(ctx, a.ID, roles); err != nil {
			return err
		}

		a.Roles, err = tx.GetRoles(ctx, a.ID)
		account = a
		return err
	})
	if err != nil {
		return domain.Account{}, err
	}

	slogx.FromContext(ctx).Info("roles assigned", "user_id", account.ID, "roles", names)
	return account, nil
}
