package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Middleware provides HTTP authentication using bearer tokens.
type Middleware struct {
	validator *JWTValidator
	logger    *zap.Logger
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(validator *JWTValidator, logger *zap.Logger) *Middleware {
	return &Middleware{validator: validator, logger: logger}
}

// RequireAuth validates the bearer token and stores the user context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "missing authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(w, "malformed authorization header")
			return
		}

		userCtx, err := m.validator.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				unauthorized(w, "token has expired")
				return
			}
			m.logger.Debug("token validation failed", zap.Error(err))
			unauthorized(w, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
	})
}

// RequireRole guards a route group behind a role.
func (m *Middleware) RequireRole(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := FromContext(r.Context())
			if !ok {
				unauthorized(w, "not authenticated")
				return
			}
			if !user.IsAdmin() && !user.HasRole(role) {
				forbidden(w, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	respondError(w, http.StatusUnauthorized, message)
}

func forbidden(w http.ResponseWriter, message string) {
	respondError(w, http.StatusForbidden, message)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
		"code":    status,
	})
}
