package http

import (
	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/pkg/usersdk"
)

func toSummary(a domain.Account, sponsorName string) usersdk.AccountSummary {
	roles := domain.RoleStrings(a.Roles)
	return usersdk.AccountSummary{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		SponsorID:   a.SponsorID,
		SponsorName: sponsorName,
		Roles:       roles,
	}
}

func toSummaries(entries []service.DirectoryEntry) []usersdk.AccountSummary {
	out := make([]usersdk.AccountSummary, len(entries))
	for i, e := range entries {
		out[i] = toSummary(e.Account, e.SponsorName)
	}
	return out
}
