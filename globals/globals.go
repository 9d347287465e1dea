package globals

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

// JwtSecret signs and verifies session tokens. Loaded once at startup,
// never mutated afterwards.
var JwtSecret []byte

func init() {
	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-signing-secret"
	}
	JwtSecret = []byte(secret)
}

var Ctx = context.Background()
