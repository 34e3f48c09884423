package service

import (
	"context"
	"errors"

	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/pkg/metricsx"
	"github.com/integra-admin/integra/pkg/slogx"
)

type LoginService struct {
	Credentials *CredentialStore
	Tokens      *TokenService
	Metrics     *metricsx.Metrics
}

// Login verifies credentials and returns a signed access token. Unknown
// usernames and wrong passwords both return ErrInvalidCredentials after the
// same amount of hashing work.
func (s *LoginService) Login(ctx context.Context, username, password string) (string, error) {
	l := slogx.FromContext(ctx)

	token, err := s.login(ctx, username, password)
	switch {
	case err == nil:
		s.Metrics.ObserveLogin(metricsx.OutcomeSuccess)
	case errors.Is(err, ErrInvalidCredentials):
		s.Metrics.ObserveLogin(metricsx.OutcomeFailure)
		l.Info("login failed", "username", username)
	case errors.Is(err, store.ErrUnavailable):
		s.Metrics.ObserveLogin(metricsx.OutcomeUnavailable)
	default:
		s.Metrics.ObserveLogin(metricsx.OutcomeError)
	}
	return token, err
}

func (s *LoginService) login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", s.Credentials.CheckUnknown(password)
	}

	account, err := s.Credentials.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return "", s.Credentials.CheckUnknown(password)
	}
	if err != nil {
		return "", err
	}

	if err := s.Credentials.CheckPassword(account, password); err != nil {
		return "", err
	}

	roles, err := s.Credentials.GetRoles(ctx, account.ID)
	if err != nil {
		return "", err
	}

	token, err := s.Tokens.Issue(account.ID, roles)
	if err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("login succeeded", "user_id", account.ID)
	return token, nil
}
