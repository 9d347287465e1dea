package auth

import (
	"testing"
	"time"

	"encore/globals"
	"encore/middleware"
	"encore/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyToken(t *testing.T) {
	token, err := IssueToken("u123", models.RoleFan)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.UserID)
	assert.Equal(t, models.RoleFan, claims.Role)

	// 7-day expiry
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, tokenTTL.Seconds(), remaining.Seconds(), 60)
}

func TestVerifyTokenTampered(t *testing.T) {
	token, err := IssueToken("u123", models.RoleAdmin)
	require.NoError(t, err)

	_, err = VerifyToken(token + "x")
	assert.Error(t, err)
}

func TestVerifyTokenWrongKey(t *testing.T) {
	claims := &middleware.Claims{
		UserID: "u123",
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-secret"))
	require.NoError(t, err)

	_, err = VerifyToken(forged)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	claims := &middleware.Claims{
		UserID: "u123",
		Role:   models.RoleFan,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)

	_, err = VerifyToken(expired)
	assert.Error(t, err)
}
