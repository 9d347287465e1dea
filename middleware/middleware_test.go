package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"encore/auth"
	"encore/middleware"
	"encore/models"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
}

func doRequest(t *testing.T, handle httprouter.Handle, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handle(rec, req, nil)
	return rec
}

func TestAuthenticateMissingHeader(t *testing.T) {
	rec := doRequest(t, middleware.Authenticate(okHandler), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	rec := doRequest(t, middleware.Authenticate(okHandler), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	rec := doRequest(t, middleware.Authenticate(okHandler), "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	token, err := auth.IssueToken("u42", models.RoleFan)
	require.NoError(t, err)

	var gotID, gotRole string
	handle := middleware.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotID = utils.GetUserIDFromRequest(r)
		gotRole = utils.GetRoleFromRequest(r)
		w.WriteHeader(http.StatusOK)
	})

	rec := doRequest(t, handle, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u42", gotID)
	assert.Equal(t, models.RoleFan, gotRole)
}

func TestRequireRoleMatrix(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		minRole  string
		wantCode int
	}{
		{"fan on moderator endpoint", models.RoleFan, models.RoleModerator, http.StatusForbidden},
		{"moderator on moderator endpoint", models.RoleModerator, models.RoleModerator, http.StatusOK},
		{"admin on moderator endpoint", models.RoleAdmin, models.RoleModerator, http.StatusOK},
		{"fan on admin endpoint", models.RoleFan, models.RoleAdmin, http.StatusForbidden},
		{"moderator on admin endpoint", models.RoleModerator, models.RoleAdmin, http.StatusForbidden},
		{"admin on admin endpoint", models.RoleAdmin, models.RoleAdmin, http.StatusOK},
		{"unknown role", "superuser", models.RoleModerator, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := auth.IssueToken("u1", tt.role)
			require.NoError(t, err)

			rec := doRequest(t, middleware.RequireRole(tt.minRole, okHandler), "Bearer "+token)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRequireRoleNoToken(t *testing.T) {
	rec := doRequest(t, middleware.RequireRole(models.RoleAdmin, okHandler), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestParseToken(t *testing.T) {
	token, err := auth.IssueToken("u7", models.RoleModerator)
	require.NoError(t, err)

	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u7", claims.UserID)
	assert.Equal(t, models.RoleModerator, claims.Role)

	_, err = middleware.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, middleware.RoleAtLeast(models.RoleAdmin, models.RoleFan))
	assert.True(t, middleware.RoleAtLeast(models.RoleModerator, models.RoleModerator))
	assert.False(t, middleware.RoleAtLeast(models.RoleFan, models.RoleModerator))
	assert.False(t, middleware.RoleAtLeast("", models.RoleFan))
}
