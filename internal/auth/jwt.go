package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/austral-erp/procurement-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// JWTValidator validates bearer tokens signed with the shared HMAC secret.
type JWTValidator struct {
	config *config.JWTConfig
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg *config.JWTConfig) *JWTValidator {
	return &JWTValidator{config: cfg}
}

// ValidateToken validates a JWT token and returns user context
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.config.Secret), nil
	},
		jwt.WithIssuer(v.config.Issuer),
		jwt.WithAudience(v.config.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userCtx := &UserContext{
		UserID:      extractString(claims, "sub"),
		DisplayName: extractString(claims, "name", "preferred_username"),
		Email:       extractString(claims, "email", "upn"),
		Roles:       extractRoles(claims),
	}
	if userCtx.UserID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return userCtx, nil
}

// extractString returns the first non-empty string claim among the keys.
func extractString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// extractRoles reads the roles claim, tolerating both string arrays and a
// single string value.
func extractRoles(claims jwt.MapClaims) []Role {
	var roles []Role
	switch raw := claims["roles"].(type) {
	case []interface{}:
		for _, r := range raw {
			if s, ok := r.(string); ok {
				roles = append(roles, Role(s))
			}
		}
	case string:
		roles = append(roles, Role(raw))
	}
	return roles
}
