package service_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/pkg/httpx"
	"github.com/integra-admin/integra/pkg/jwtx"
	"github.com/integra-admin/integra/pkg/usersdk"
	"github.com/stretchr/testify/require"
)

func issueAt(t *testing.T, f *fixture, at time.Time, roles ...domain.RoleName) string {
	t.Helper()
	tokens := *f.tokens
	tokens.Now = func() time.Time { return at }
	token, err := tokens.Issue("01HZY3Q8W4K7V2M9N5P6R1S0TX", roles)
	require.NoError(t, err)
	return token
}

func gateAt(t *testing.T, at time.Time) *service.AccessGate {
	t.Helper()
	v, err := jwtx.NewVerifierHS256([]byte(testSecret), testIssuer, testAudience,
		jwtx.WithClock(func() time.Time { return at }))
	require.NoError(t, err)
	return &service.AccessGate{Verifier: v}
}

func TestAuthorizeLifetimeWindow(t *testing.T) {
	f := newFixture(t)
	issued := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	token := issueAt(t, f, issued, domain.RoleAdmin)

	for _, offset := range []time.Duration{0, time.Minute, 59*time.Minute + 59*time.Second} {
		d := gateAt(t, issued.Add(offset)).Authorize(domain.RoleAdmin, token)
		require.True(t, d.Admitted(), "offset %s", offset)
	}

	for _, offset := range []time.Duration{time.Hour, 2 * time.Hour} {
		d := gateAt(t, issued.Add(offset)).Authorize(domain.RoleAdmin, token)
		require.Equal(t, service.DecisionUnauthenticated, d.Outcome)
		require.Equal(t, "token expired", d.Reason)
	}
}

func TestAuthorizeRoleMatch(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	sponsorOnly := issueAt(t, f, now, domain.RoleSponsor)
	d := f.gate.Authorize(domain.RoleAdmin, sponsorOnly)
	require.Equal(t, service.DecisionForbidden, d.Outcome)

	withAdmin := issueAt(t, f, now, domain.RoleSponsor, domain.RoleAdmin)
	d = f.gate.Authorize(domain.RoleAdmin, withAdmin)
	require.True(t, d.Admitted())
	require.Equal(t, "01HZY3Q8W4K7V2M9N5P6R1S0TX", d.Claims.UserID)
}

func TestAuthorizeBadTokens(t *testing.T) {
	f := newFixture(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		d := f.gate.Authorize(domain.RoleAdmin, token)
		require.Equal(t, service.DecisionUnauthenticated, d.Outcome, "token %q", token)
	}

	other, err := jwtx.NewSignerHS256([]byte("another-secret-that-is-32-bytes!"))
	require.NoError(t, err)
	set, err := jwtx.NewClaimSet("u1", []string{"Admin"})
	require.NoError(t, err)
	forged, err := other.Sign(jwtx.NewAccessClaims(set, testIssuer, testAudience, time.Now()))
	require.NoError(t, err)

	d := f.gate.Authorize(domain.RoleAdmin, forged)
	require.Equal(t, service.DecisionUnauthenticated, d.Outcome)
}

func TestRequireMiddleware(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	var called bool
	h := f.gate.Require(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.True(t, claims.HasRole("Admin"))
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		status int
		code   string
		called bool
	}{
		{"no token", "", http.StatusUnauthorized, usersdk.CodeUnauthorized, false},
		{"malformed", "Bearer nope", http.StatusUnauthorized, usersdk.CodeUnauthorized, false},
		{"wrong role", "Bearer " + issueAt(t, f, now, domain.RoleSponsor), http.StatusForbidden, usersdk.CodeForbidden, false},
		{"admin", "Bearer " + issueAt(t, f, now, domain.RoleAdmin), http.StatusNoContent, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called = false
			r := httptest.NewRequest(http.MethodGet, "/api/users/all-users", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.called, called)
			switch tc.status {
			case http.StatusUnauthorized:
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
			case http.StatusForbidden:
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="insufficient_scope"`)
			}
			if tc.code != "" {
				var body usersdk.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				require.Equal(t, tc.code, body.Code)
				require.NotEmpty(t, body.Message)
			}
		})
	}
}
