package service

import (
	"fmt"
	"time"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/pkg/jwtx"
)

// TokenService issues access tokens. It holds no state beyond configuration;
// issued tokens are never stored.
type TokenService struct {
	Signer   jwtx.Signer
	Issuer   string
	Audience []string
	Now      func() time.Time
}

// Issue signs a token carrying one role claim per role and the account id. It
// expires jwtx.AccessTokenTTL after issue.
func (s *TokenService) Issue(accountID string, roles []domain.RoleName) (string, error) {
	for _, r := range roles {
		if !r.Valid() {
			return "", fmt.Errorf("%w: role %q outside vocabulary", jwtx.ErrInvalidClaim, r)
		}
	}

	set, err := jwtx.NewClaimSet(accountID, domain.RoleStrings(roles))
	if err != nil {
		return "", err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	claims := jwtx.NewAccessClaims(set, s.Issuer, s.Audience, now())
	return s.Signer.Sign(claims)
}
