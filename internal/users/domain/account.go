package domain

import (
	"strings"
	"time"
)

type Account struct {
	ID                 string
	Username           string
	NormalizedUsername string // upper-cased copy, unique
	Email              string
	FirstName          string
	LastName           string
	SponsorID          *int64 // nullable FK to sponsors
	PasswordHash       string // argon2id PHC string
	Roles              []RoleName
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NormalizeUsername returns the lookup key used for uniqueness and login.
func NormalizeUsername(username string) string {
	return strings.ToUpper(strings.TrimSpace(username))
}
