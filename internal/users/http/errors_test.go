package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/pkg/usersdk"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &service.ValidationError{Fields: map[string]string{"email": "bad"}}, http.StatusBadRequest, usersdk.CodeValidation},
		{"duplicate", service.ErrDuplicateAccount, http.StatusBadRequest, usersdk.CodeDuplicate},
		{"credentials", service.ErrInvalidCredentials, http.StatusBadRequest, ""},
		{"not found", service.ErrAccountNotFound, http.StatusNotFound, usersdk.CodeNotFound},
		{"unavailable", fmt.Errorf("list: %w", store.ErrUnavailable), http.StatusServiceUnavailable, usersdk.CodeUnavailable},
		{"unexpected", errors.New("disk on fire at /var/lib/users.db"), http.StatusInternalServerError, usersdk.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			require.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				require.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
			}
			require.NotContains(t, rec.Body.String(), "disk on fire")
		})
	}
}
