package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PasswordPolicy is an ozzo-validation rule for password strength.
type PasswordPolicy struct {
	MinLength              int
	RequireDigit           bool
	RequireLower           bool
	RequireUpper           bool
	RequireNonAlphanumeric bool
}

// DefaultPasswordPolicy mirrors the identity store the service replaced:
// six characters with a digit, both cases and a symbol.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:              6,
	RequireDigit:           true,
	RequireLower:           true,
	RequireUpper:           true,
	RequireNonAlphanumeric: true,
}

// Validate implements validation.Rule. Every unmet requirement is listed.
func (p PasswordPolicy) Validate(value interface{}) error {
	pw, ok := value.(string)
	if !ok {
		return errors.New("must be a string")
	}

	var digit, lower, upper, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}

	var missing []string
	if len([]rune(pw)) < p.MinLength {
		missing = append(missing, fmt.Sprintf("at least %d characters", p.MinLength))
	}
	if p.RequireDigit && !digit {
		missing = append(missing, "a digit")
	}
	if p.RequireLower && !lower {
		missing = append(missing, "a lowercase letter")
	}
	if p.RequireUpper && !upper {
		missing = append(missing, "an uppercase letter")
	}
	if p.RequireNonAlphanumeric && !symbol {
		missing = append(missing, "a non-alphanumeric character")
	}

	if len(missing) == 0 {
		return nil
	}
	return errors.New("must contain " + strings.Join(missing, ", "))
}
