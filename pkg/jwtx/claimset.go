package jwtx

import (
	"fmt"
	"strings"
	"unicode"
)

// ClaimType names the two claim kinds the service puts in a token.
type ClaimType string

const (
	ClaimTypeRole   ClaimType = "role"
	ClaimTypeUserID ClaimType = "UserId"
)

// Claim is a closed set: only RoleClaim and SubjectClaim implement it.
type Claim interface {
	Type() ClaimType
	Value() string
	claim()
}

// RoleClaim grants a named role.
type RoleClaim struct{ Name string }

func (RoleClaim) Type() ClaimType { return ClaimTypeRole }
func (c RoleClaim) Value() string { return c.Name }
func (RoleClaim) claim()          {}

// SubjectClaim identifies the account the token was issued to.
type SubjectClaim struct{ ID string }

func (SubjectClaim) Type() ClaimType { return ClaimTypeUserID }
func (c SubjectClaim) Value() string { return c.ID }
func (SubjectClaim) claim()          {}

// ClaimSet is a validated collection of claims: exactly one subject and zero
// or more distinct roles. Build it with NewClaimSet.
type ClaimSet struct {
	claims []Claim
}

// NewClaimSet validates the subject and roles and returns the claim set in
// role order followed by the subject.
func NewClaimSet(subject string, roles []string) (ClaimSet, error) {
	if err := checkValue(subject); err != nil {
		return ClaimSet{}, fmt.Errorf("%w: subject: %v", ErrInvalidClaim, err)
	}

	seen := make(map[string]struct{}, len(roles))
	claims := make([]Claim, 0, len(roles)+1)
	for _, role := range roles {
		if err := checkValue(role); err != nil {
			return ClaimSet{}, fmt.Errorf("%w: role %q: %v", ErrInvalidClaim, role, err)
		}
		if _, dup := seen[role]; dup {
			return ClaimSet{}, fmt.Errorf("%w: duplicate role %q", ErrInvalidClaim, role)
		}
		seen[role] = struct{}{}
		claims = append(claims, RoleClaim{Name: role})
	}
	claims = append(claims, SubjectClaim{ID: subject})

	return ClaimSet{claims: claims}, nil
}

// Claims returns a copy of the claims in the set.
func (s ClaimSet) Claims() []Claim {
	out := make([]Claim, len(s.claims))
	copy(out, s.claims)
	return out
}

func checkValue(v string) error {
	if v == "" {
		return fmt.Errorf("empty value")
	}
	if strings.TrimSpace(v) != v {
		return fmt.Errorf("surrounding whitespace")
	}
	for _, r := range v {
		if unicode.IsControl(r) {
			return fmt.Errorf("control character")
		}
	}
	return nil
}
