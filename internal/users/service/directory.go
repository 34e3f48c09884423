package service

import (
	"context"

	"github.com/integra-admin/integra/internal/users/domain"
)

// DirectoryEntry is an account with its sponsor resolved for display.
type DirectoryEntry struct {
	Account     domain.Account
	SponsorName string
}

// DirectoryService answers the administrative listings. Both are full reads
// ordered by username.
type DirectoryService struct {
	Credentials *CredentialStore
}

// ListBySponsorRole lists accounts holding the Sponsor role with their
// sponsor name attached.
func (s *DirectoryService) ListBySponsorRole(ctx context.Context) ([]DirectoryEntry, error) {
	accounts, err := s.Credentials.UsersInRole(ctx, domain.RoleSponsor)
	if err != nil {
		return nil, err
	}
	return s.withSponsors(ctx, accounts)
}

// ListAll lists every account with its roles.
func (s *DirectoryService) ListAll(ctx context.Context) ([]DirectoryEntry, error) {
	accounts, err := s.Credentials.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return s.withSponsors(ctx, accounts)
}

func (s *DirectoryService) withSponsors(ctx context.Context, accounts []domain.Account) ([]DirectoryEntry, error) {
	entries := make([]DirectoryEntry, len(accounts))

	var names map[int64]string
	for i, a := range accounts {
		entries[i].Account = a
		if a.SponsorID == nil {
			continue
		}
		if names == nil {
			sponsors, err := s.Credentials.Sponsors(ctx)
			if err != nil {
				return nil, err
			}
			names = make(map[int64]string, len(sponsors))
			for _, sp := range sponsors {
				names[sp.ID] = sp.Name
			}
		}
		entries[i].SponsorName = names[*a.SponsorID]
	}
	return entries, nil
}
