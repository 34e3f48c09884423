package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/internal/users/store/drivers/sqlite"
	"github.com/integra-admin/integra/internal/users/store/sqlstore"
	"github.com/integra-admin/integra/pkg/cryptox"
	"github.com/integra-admin/integra/pkg/jwtx"
	"github.com/integra-admin/integra/pkg/metricsx"
	"github.com/integra-admin/integra/pkg/usersdk"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-that-is-32-bytes-ok!"
	testIssuer = "integra-test"
)

var testAudience = []string{"integra-admin"}

type fixture struct {
	store     *sqlstore.Store
	creds     *service.CredentialStore
	tokens    *service.TokenService
	verifier  *jwtx.HS256Verifier
	metrics   *metricsx.Metrics
	register  *service.RegistrationService
	login     *service.LoginService
	directory *service.DirectoryService
	roles     *service.RolesService
	gate      *service.AccessGate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	hasher, err := cryptox.NewHasher("pepper", cryptox.Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})
	require.NoError(t, err)

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(testSecret), testIssuer, testAudience)
	require.NoError(t, err)

	m := metricsx.New()
	creds := &service.CredentialStore{Store: s, Hasher: hasher, Timeout: 5 * time.Second}
	tokens := &service.TokenService{Signer: signer, Issuer: testIssuer, Audience: testAudience}

	return &fixture{
		store:     s,
		creds:     creds,
		tokens:    tokens,
		verifier:  verifier,
		metrics:   m,
		register:  &service.RegistrationService{Credentials: creds, Metrics: m},
		login:     &service.LoginService{Credentials: creds, Tokens: tokens, Metrics: m},
		directory: &service.DirectoryService{Credentials: creds},
		roles:     &service.RolesService{Credentials: creds},
		gate:      &service.AccessGate{Verifier: verifier, Metrics: m},
	}
}

func registerReq(username string) usersdk.RegisterRequest {
	return usersdk.RegisterRequest{
		Username:  username,
		Email:     username + "@x.com",
		FirstName: "First",
		LastName:  "Last",
		Password:  "Secret1!",
	}
}

func (f *fixture) countAccounts(t *testing.T) int {
	t.Helper()
	all, err := f.store.Accounts().ListAccounts(context.Background())
	require.NoError(t, err)
	return len(all)
}

// createSponsor writes straight to the table; the API never creates sponsors.
func (f *fixture) createSponsor(t *testing.T, name string) domain.Sponsor {
	t.Helper()
	sp := domain.Sponsor{Name: name}
	err := f.store.DB().QueryRow(`INSERT INTO sponsors (name) VALUES (?) RETURNING id`, name).Scan(&sp.ID)
	require.NoError(t, err)
	return sp
}

func (f *fixture) countAccountRoles(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.store.DB().QueryRow(`SELECT COUNT(*) FROM account_roles`).Scan(&n))
	return n
}
