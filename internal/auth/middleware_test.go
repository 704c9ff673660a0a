package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/auth"
)

func newMiddleware() *auth.Middleware {
	return auth.NewMiddleware(auth.NewJWTValidator(testJWTConfig()), zap.NewNop())
}

func TestRequireAuthStoresUserContext(t *testing.T) {
	mw := newMiddleware()
	token := mintToken(t, testJWTConfig(), nil)

	var seen *auth.UserContext
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		seen = user
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rfqs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-42", seen.UserID)
}

func TestRequireAuthRejections(t *testing.T) {
	mw := newMiddleware()
	expired := mintToken(t, testJWTConfig(), func(claims jwt.MapClaims) {
		claims["exp"] = 1
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz"},
		{"malformed header", "Bearer"},
		{"invalid token", "Bearer garbage"},
		{"expired token", "Bearer " + expired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/rfqs", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestRequireRole(t *testing.T) {
	mw := newMiddleware()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(roles ...auth.Role) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/numerators", nil)
		if roles != nil {
			user := &auth.UserContext{UserID: "u1", Roles: roles}
			req = req.WithContext(auth.WithUserContext(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		mw.RequireRole(auth.RoleAdmin)(next).ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, serve(auth.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, serve(auth.RoleBuyer).Code)
	assert.Equal(t, http.StatusUnauthorized, serve().Code)
}
