package middleware

import (
	"context"
	"fmt"
	"net/http"

	"encore/globals"
	"encore/models"
	"encore/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var roleRank = map[string]int{
	models.RoleFan:       0,
	models.RoleModerator: 1,
	models.RoleAdmin:     2,
}

// RoleAtLeast reports whether have carries at least the privilege of want.
// Unknown role values rank below fan.
func RoleAtLeast(have, want string) bool {
	h, ok := roleRank[have]
	if !ok {
		return false
	}
	return h >= roleRank[want]
}

// ParseToken verifies a raw HS256 token (no Bearer prefix) and returns
// its claims. Both the gate and the token service verify through here.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func parseBearer(r *http.Request) (*Claims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token format")
	}
	return ParseToken(tokenString[7:])
}

func withIdentity(r *http.Request, claims *Claims) *http.Request {
	ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
	return r.WithContext(ctx)
}

// Authenticate admits any request carrying a valid bearer token and stores
// the caller's identity in the request context.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := parseBearer(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		next(w, withIdentity(r, claims), ps)
	}
}

// RequireRole gates a handler behind a minimum role. A valid token below
// the threshold is forbidden rather than rejected.
func RequireRole(minRole string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := parseBearer(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		if !RoleAtLeast(claims.Role, minRole) {
			utils.RespondWithError(w, http.StatusForbidden, roleDeniedMessage(minRole))
			return
		}
		next(w, withIdentity(r, claims), ps)
	}
}

func roleDeniedMessage(minRole string) string {
	switch minRole {
	case models.RoleAdmin:
		return "Admin access required"
	case models.RoleModerator:
		return "Moderator or admin access required"
	default:
		return "Insufficient role"
	}
}
