package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/config"
)

const testSecret = "test-secret-which-is-long-enough"

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:   testSecret,
		Issuer:   "https://auth.austral-erp.com",
		Audience: "procurement-api",
	}
}

func mintToken(t *testing.T, cfg *config.JWTConfig, mutate func(claims jwt.MapClaims)) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "user-42",
		"name":  "Ana Torres",
		"email": "ana.torres@austral-erp.com",
		"roles": []string{"buyer"},
		"iss":   cfg.Issuer,
		"aud":   cfg.Audience,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestValidateTokenHappyPath(t *testing.T) {
	cfg := testJWTConfig()
	validator := auth.NewJWTValidator(cfg)

	user, err := validator.ValidateToken(mintToken(t, cfg, nil))
	require.NoError(t, err)

	assert.Equal(t, "user-42", user.UserID)
	assert.Equal(t, "Ana Torres", user.DisplayName)
	assert.Equal(t, "ana.torres@austral-erp.com", user.Email)
	assert.Equal(t, []auth.Role{auth.RoleBuyer}, user.Roles)
}

func TestValidateTokenSingleStringRole(t *testing.T) {
	cfg := testJWTConfig()
	validator := auth.NewJWTValidator(cfg)

	token := mintToken(t, cfg, func(claims jwt.MapClaims) {
		claims["roles"] = "approver"
	})
	user, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, []auth.Role{auth.RoleApprover}, user.Roles)
}

func TestValidateTokenFallsBackToPreferredUsername(t *testing.T) {
	cfg := testJWTConfig()
	validator := auth.NewJWTValidator(cfg)

	token := mintToken(t, cfg, func(claims jwt.MapClaims) {
		delete(claims, "name")
		claims["preferred_username"] = "ana.t"
	})
	user, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana.t", user.DisplayName)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testJWTConfig()
	validator := auth.NewJWTValidator(cfg)

	token := mintToken(t, cfg, func(claims jwt.MapClaims) {
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
	})
	_, err := validator.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	validator := auth.NewJWTValidator(cfg)

	token := mintToken(t, cfg, func(claims jwt.MapClaims) {
		claims["iss"] = "https://evil.example.com"
	})
	_, err := validator.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateTokenWrongAudience(t *testing.T) {
	cfg := testJWTConfig()
	validator := auth.NewJWTValidator(cfg)

	token := mintToken(t, cfg, func(claims jwt.MapClaims) {
		claims["aud"] = "another-api"
	})
	_, err := validator.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	validator := auth.NewJWTValidator(testJWTConfig())

	claims := jwt.MapClaims{
		"sub": "user-42",
		"iss": "https://auth.austral-erp.com",
		"aud": "procurement-api",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = validator.ValidateToken(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateTokenMissingSubject(t *testing.T) {
	cfg := testJWTConfig()
	validator := auth.NewJWTValidator(cfg)

	token := mintToken(t, cfg, func(claims jwt.MapClaims) {
		delete(claims, "sub")
	})
	_, err := validator.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	validator := auth.NewJWTValidator(testJWTConfig())

	_, err := validator.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
