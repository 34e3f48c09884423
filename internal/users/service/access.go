package service

import (
	"errors"
	"net/http"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/pkg/httpx"
	"github.com/integra-admin/integra/pkg/jwtx"
	"github.com/integra-admin/integra/pkg/metricsx"
	"github.com/integra-admin/integra/pkg/slogx"
	"github.com/integra-admin/integra/pkg/usersdk"
)

// Decision outcomes, also used as metric labels.
const (
	DecisionAdmit           = "admit"
	DecisionUnauthenticated = "deny_unauthenticated"
	DecisionForbidden       = "deny_forbidden"
)

// Decision is the result of an access check.
type Decision struct {
	Outcome string
	Reason  string
	Claims  jwtx.Claims
}

func (d Decision) Admitted() bool { return d.Outcome == DecisionAdmit }

// AccessGate admits a request only when its bearer token verifies and carries
// the required role verbatim.
type AccessGate struct {
	Verifier jwtx.Verifier
	Metrics  *metricsx.Metrics
}

// Authorize never returns an error: anything short of a valid token holding
// required is a deny.
func (g *AccessGate) Authorize(required domain.RoleName, token string) Decision {
	d := g.decide(required, token)
	g.Metrics.ObserveAccess(string(required), d.Outcome)
	return d
}

func (g *AccessGate) decide(required domain.RoleName, token string) Decision {
	if token == "" {
		return Decision{Outcome: DecisionUnauthenticated, Reason: "missing bearer token"}
	}

	claims, err := g.Verifier.Verify(token)
	if err != nil {
		reason := "token verification failed"
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			reason = "token expired"
		case errors.Is(err, jwtx.ErrNotYetValid):
			reason = "token not yet valid"
		}
		return Decision{Outcome: DecisionUnauthenticated, Reason: reason}
	}

	if !claims.HasRole(string(required)) {
		return Decision{Outcome: DecisionForbidden, Reason: "missing role " + string(required), Claims: claims}
	}
	return Decision{Outcome: DecisionAdmit, Claims: claims}
}

// Require wraps a handler so it only runs for admitted requests.
func (g *AccessGate) Require(role domain.RoleName) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := httpx.BearerToken(r)
			d := g.Authorize(role, token)

			switch d.Outcome {
			case DecisionAdmit:
				next.ServeHTTP(w, r.WithContext(httpx.WithClaims(r.Context(), d.Claims)))
			case DecisionForbidden:
				slogx.FromContext(r.Context()).Warn("access denied",
					"role", string(role), "user_id", d.Claims.UserID)
				httpx.SetInsufficientScopeChallenge(w, string(role))
				usersdk.ErrForbidden.WriteError(w)
			default:
				slogx.FromContext(r.Context()).Info("unauthenticated request",
					"role", string(role), "reason", d.Reason)
				httpx.SetInvalidTokenChallenge(w, d.Reason)
				usersdk.ErrUnauthorized.WriteError(w)
			}
		})
	}
}
