package usersdk

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._@+\-]+$`)

// Validate checks field shape. Password strength is the server's policy and is
// enforced there.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required,
			validation.Length(3, 64),
			validation.Match(usernamePattern).Error("may only contain letters, digits and . _ @ + -"),
		),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.EmailFormat),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.SponsorID, validation.Min(int64(1))),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
	)
}

func (r AssignRolesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Roles, validation.Required, validation.By(distinctNonEmpty)),
	)
}

func distinctNonEmpty(value interface{}) error {
	roles, _ := value.([]string)
	seen := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if role == "" {
			return errors.New("must not contain empty values")
		}
		if _, dup := seen[role]; dup {
			return errors.New("must not contain duplicates")
		}
		seen[role] = struct{}{}
	}
	return nil
}

// FieldErrors flattens an ozzo validation error into field -> message. It
// returns nil when err is not a field validation failure.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			out[field] = ferr.Error()
		}
	}
	return out
}
