package domain

import (
	"errors"
	"fmt"
	"slices"
)

// RoleName is a role from the fixed vocabulary seeded by migrations.
type RoleName string

const (
	RoleAdmin        RoleName = "Admin"
	RoleSponsor      RoleName = "Sponsor"
	RoleSponsorRead  RoleName = "Sponsor Read"
	RoleSponsorWrite RoleName = "Sponsor Write"
)

var ErrUnknownRole = errors.New("unknown role")

var vocabulary = []RoleName{RoleAdmin, RoleSponsor, RoleSponsorRead, RoleSponsorWrite}

// Vocabulary returns every known role name.
func Vocabulary() []RoleName { return slices.Clone(vocabulary) }

func (r RoleName) Valid() bool { return slices.Contains(vocabulary, r) }

func (r RoleName) String() string { return string(r) }

// ParseRoleName matches s exactly (case-sensitive) against the vocabulary.
func ParseRoleName(s string) (RoleName, error) {
	r := RoleName(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// RoleStrings converts role names to plain strings, e.g. for token claims.
func RoleStrings(roles []RoleName) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

type Role struct {
	ID   string
	Name RoleName
}
