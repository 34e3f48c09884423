package sqlstore

import (
	"context"

	"github.com/integra-admin/integra/internal/users/domain"
)

type rolesRepo struct {
	c conn
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.c.query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, r.c.mapErr(err)
		}
		roles = append(roles, role)
	}
	return roles, r.c.mapErr(rows.Err())
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name domain.RoleName) (domain.Role, error) {
	var role domain.Role
	err := r.c.queryRow(ctx, `SELECT id, name FROM roles WHERE name = ?`, string(name)).
		Scan(&role.ID, &role.Name)
	if err != nil {
		return domain.Role{}, r.c.mapErr(err)
	}
	return role, nil
}

func (r *rolesRepo) AddAccountToRoles(ctx context.Context, accountID string, roles []domain.RoleName) error {
	for _, name := range roles {
		role, err := r.GetRoleByName(ctx, name)
		if err != nil {
			return err
		}
		_, err = r.c.exec(ctx, `
			INSERT INTO account_roles (account_id, role_id) VALUES (?, ?)
			ON CONFLICT (account_id, role_id) DO NOTHING`, accountID, role.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *rolesRepo) GetAccountRoles(ctx context.Context, accountID string) ([]domain.RoleName, error) {
	rows, err := r.c.query(ctx, `
		SELECT r.name
		FROM account_roles ar
		JOIN roles r ON r.id = ar.role_id
		WHERE ar.account_id = ?
		ORDER BY r.name`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.RoleName
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, r.c.mapErr(err)
		}
		roles = append(roles, domain.RoleName(name))
	}
	return roles, r.c.mapErr(rows.Err())
}
