package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/pkg/idx"
	"github.com/integra-admin/integra/pkg/metricsx"
	"github.com/integra-admin/integra/pkg/slogx"
	"github.com/integra-admin/integra/pkg/usersdk"
)

// Registration entry points, also used as metric labels.
const (
	VariantSelfService = "self_service"
	VariantSponsor     = "sponsor"
)

var (
	// DefaultSelfServiceRoles keeps the historical behaviour of the public
	// endpoint. Operators can narrow it through configuration.
	DefaultSelfServiceRoles = []domain.RoleName{domain.RoleAdmin}

	SponsorRoles = []domain.RoleName{domain.RoleSponsorRead, domain.RoleSponsorWrite, domain.RoleSponsor}
)

// RegistrationService creates accounts. The role set is fixed per entry
// point; roles sent by the caller are ignored.
type RegistrationService struct {
	Credentials      *CredentialStore
	Policy           PasswordPolicy
	SelfServiceRoles []domain.RoleName
	Metrics          *metricsx.Metrics
	Now              func() time.Time
}

// RegisterSelfService handles the public registration endpoint.
func (s *RegistrationService) RegisterSelfService(ctx context.Context, req usersdk.RegisterRequest) (domain.Account, error) {
	roles := s.SelfServiceRoles
	if len(roles) == 0 {
		roles = DefaultSelfServiceRoles
	}
	return s.register(ctx, req, VariantSelfService, roles)
}

// RegisterSponsorUser handles the Admin-gated sponsor registration endpoint.
func (s *RegistrationService) RegisterSponsorUser(ctx context.Context, req usersdk.RegisterRequest) (domain.Account, error) {
	return s.register(ctx, req, VariantSponsor, SponsorRoles)
}

func (s *RegistrationService) register(
	ctx context.Context,
	req usersdk.RegisterRequest,
	variant string,
	roles []domain.RoleName,
) (domain.Account, error) {
	l := slogx.FromContext(ctx).With("variant", variant)

	account, err := s.registerTx(ctx, req, roles)
	s.Metrics.ObserveRegistration(variant, registrationOutcome(err))
	if err != nil {
		l.Info("registration rejected", "username", req.Username, "err", err)
		return domain.Account{}, err
	}

	l.Info("account registered", "user_id", account.ID, "roles", domain.RoleStrings(account.Roles))
	return account, nil
}

func (s *RegistrationService) registerTx(
	ctx context.Context,
	req usersdk.RegisterRequest,
	roles []domain.RoleName,
) (domain.Account, error) {
	if err := s.validate(req); err != nil {
		return domain.Account{}, err
	}

	hash, err := s.Credentials.HashPassword(req.Password)
	if err != nil {
		return domain.Account{}, err
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	account := domain.Account{
		ID:                 idx.NewAt(now).String(),
		Username:           req.Username,
		NormalizedUsername: domain.NormalizeUsername(req.Username),
		Email:              strings.TrimSpace(req.Email),
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		SponsorID:          req.SponsorID,
		PasswordHash:       hash,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = s.Credentials.WithTx(ctx, func(tx *CredentialStore) error {
		if account.SponsorID != nil {
			if _, err := tx.Sponsor(ctx, *account.SponsorID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return invalidField("sponsorId", "unknown sponsor")
				}
				return err
			}
		}

		taken, err := tx.UsernameTaken(ctx, account.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateAccount
		}

		if err := tx.Create(ctx, account); err != nil {
			return err
		}
		return tx.AddToRoles(ctx, account.ID, roles)
	})
	if err != nil {
		return domain.Account{}, err
	}

	account.Roles = slices.Sorted(slices.Values(roles))
	return account, nil
}

// validate runs field rules and the password policy together so the caller
// sees every problem at once.
func (s *RegistrationService) validate(req usersdk.RegisterRequest) error {
	fields := map[string]string{}
	if err := req.Validate(); err != nil {
		verrs := usersdk.FieldErrors(err)
		if verrs == nil {
			return err
		}
		for k, v := range verrs {
			fields[k] = v
		}
	}

	if _, bad := fields["password"]; !bad {
		if err := validation.Validate(req.Password, s.policy()); err != nil {
			fields["password"] = err.Error()
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *RegistrationService) policy() PasswordPolicy {
	if s.Policy == (PasswordPolicy{}) {
		return DefaultPasswordPolicy
	}
	return s.Policy
}

func registrationOutcome(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return metricsx.OutcomeSuccess
	case errors.As(err, &verr):
		return metricsx.OutcomeInvalid
	case errors.Is(err, ErrDuplicateAccount):
		return metricsx.OutcomeDuplicate
	case errors.Is(err, store.ErrUnavailable):
		return metricsx.OutcomeUnavailable
	default:
		return metricsx.OutcomeError
	}
}
