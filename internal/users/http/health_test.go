package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpapi "github.com/integra-admin/integra/internal/users/http"
	"github.com/integra-admin/integra/pkg/slogx"
	"github.com/integra-admin/integra/pkg/usersdk"
)

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadyzHidesStoreError(t *testing.T) {
	const detail = "dial tcp 10.0.0.7:5432: connect: connection refused"
	h := httpapi.ReadyzHandler(time.Now(), "test", pingerFunc(func(context.Context) error {
		return errors.New(detail)
	}))

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	r = r.WithContext(slogx.WithContext(r.Context(), logger))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotContains(t, rec.Body.String(), "10.0.0.7")

	var body usersdk.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "degraded", body.Status)
	require.Equal(t, map[string]string{"database": "error"}, body.Checks)

	require.Contains(t, logs.String(), "readiness check failed")
	require.Contains(t, logs.String(), detail)
}

func TestReadyzHealthy(t *testing.T) {
	h := httpapi.ReadyzHandler(time.Now(), "test", pingerFunc(func(context.Context) error { return nil }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body usersdk.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
	require.Equal(t, "test", body.Version)
	require.Equal(t, map[string]string{"database": "ok"}, body.Checks)
}
