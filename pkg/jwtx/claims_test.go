package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/integra-admin/integra/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "integra"},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("integra"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrIssuer)
	})
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"admin", "portal"}},
	}

	require.NoError(t, c.ValidateAudience([]string{"portal"}))
	require.NoError(t, c.ValidateAudience(nil))
	require.ErrorIs(t, c.ValidateAudience([]string{"billing"}), jwtx.ErrAudience)
}

func TestValidateLifetime(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	set, err := jwtx.NewClaimSet("01J0000000000000000000000", []string{"Admin"})
	require.NoError(t, err)

	c := jwtx.NewAccessClaims(set, "integra", []string{"admin"}, now)

	require.NoError(t, c.ValidateLifetime(now))
	require.NoError(t, c.ValidateLifetime(now.Add(time.Hour-time.Second)))
	require.ErrorIs(t, c.ValidateLifetime(now.Add(time.Hour)), jwtx.ErrExpired)
	require.ErrorIs(t, c.ValidateLifetime(now.Add(-time.Second)), jwtx.ErrNotYetValid)

	c.ExpiresAt = nil
	require.ErrorIs(t, c.ValidateLifetime(now), jwtx.ErrInvalidClaim)
}

func TestNewAccessClaimsTruncatesToSeconds(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 750_000_000, time.UTC)
	set, err := jwtx.NewClaimSet("u1", []string{"Sponsor", "Sponsor Read"})
	require.NoError(t, err)

	c := jwtx.NewAccessClaims(set, "integra", []string{"admin"}, now)

	require.Equal(t, now.Truncate(time.Second), c.IssuedAt.Time)
	require.Equal(t, now.Truncate(time.Second).Add(time.Hour), c.ExpiresAt.Time)
	require.Equal(t, "u1", c.UserID)
	require.True(t, c.HasRole("Sponsor Read"))
	require.False(t, c.HasRole("sponsor read"))
}
