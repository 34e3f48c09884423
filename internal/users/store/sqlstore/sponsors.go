package sqlstore

import (
	"context"

	"github.com/integra-admin/integra/internal/users/domain"
)

type sponsorsRepo struct {
	c conn
}

func (r *sponsorsRepo) GetSponsor(ctx context.Context, id int64) (domain.Sponsor, error) {
	var s domain.Sponsor
	err := r.c.queryRow(ctx, `SELECT id, name FROM sponsors WHERE id = ?`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		return domain.Sponsor{}, r.c.mapErr(err)
	}
	return s, nil
}

func (r *sponsorsRepo) ListSponsors(ctx context.Context) ([]domain.Sponsor, error) {
	rows, err := r.c.query(ctx, `SELECT id, name FROM sponsors ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sponsors := []domain.Sponsor{}
	for rows.Next() {
		var s domain.Sponsor
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, r.c.mapErr(err)
		}
		sponsors = append(sponsors, s)
	}
	return sponsors, r.c.mapErr(rows.Err())
}
