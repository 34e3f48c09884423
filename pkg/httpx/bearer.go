package httpx

import (
	"net/http"
	"strings"
)

// BearerToken extracts the credential from an "Authorization: Bearer" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, raw, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}

// SetInvalidTokenChallenge sets the RFC 6750 invalid_token challenge that
// must accompany a 401. The caller writes the body.
func SetInvalidTokenChallenge(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
}

// SetInsufficientScopeChallenge sets the RFC 6750 insufficient_scope challenge
// for a 403 caused by a missing role.
func SetInsufficientScopeChallenge(w http.ResponseWriter, role string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", error_description="role `+role+` required"`)
}
