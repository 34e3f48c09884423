package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is how long an issued access token stays valid. It is fixed;
// there is no refresh grant, callers log in again once it lapses.
const AccessTokenTTL = time.Hour

// Claims is the JWT payload. Role and UserId keep the claim names existing
// consumers of the admin API already read.
type Claims struct {
	jwt.RegisteredClaims

	// Roles holds one entry per assigned role ("role": ["Admin", ...]).
	Roles jwt.ClaimStrings `json:"role,omitempty"`

	// UserID is the account identifier ("UserId").
	UserID string `json:"UserId,omitempty"`
}

// NewAccessClaims encodes a validated claim set with the registered claims.
// now is truncated to whole seconds because NumericDate drops sub-second
// precision on the wire anyway.
func NewAccessClaims(set ClaimSet, issuer string, audience []string, now time.Time) Claims {
	now = now.UTC().Truncate(time.Second)

	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}
	for _, claim := range set.Claims() {
		switch v := claim.(type) {
		case RoleClaim:
			c.Roles = append(c.Roles, v.Name)
		case SubjectClaim:
			c.UserID = v.ID
		}
	}
	return c
}

// HasRole reports whether role is present verbatim (case-sensitive).
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateLifetime enforces nbf <= now < exp. Tokens without exp are rejected
// since every token this service mints carries one.
func (c *Claims) ValidateLifetime(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
