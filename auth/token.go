package auth

import (
	"time"

	"encore/globals"
	"encore/middleware"

	"github.com/golang-jwt/jwt/v5"
)

// Session tokens are valid for 7 days.
const tokenTTL = 7 * 24 * time.Hour

// IssueToken signs an HS256 session token carrying the user's id and role.
func IssueToken(userID, role string) (string, error) {
	claims := &middleware.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// VerifyToken parses a raw token string (no Bearer prefix) and returns its
// claims, failing on bad signature or expiry.
func VerifyToken(tokenString string) (*middleware.Claims, error) {
	return middleware.ParseToken(tokenString)
}
