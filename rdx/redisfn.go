package rdx

import (
	"os"
	"time"

	"encore/globals"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

// SetCache stores a value with a TTL. Errors are returned so callers can
// decide whether a cache miss matters; most treat the cache as optional.
func SetCache(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func GetCache(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func DelCache(keys ...string) error {
	return Conn.Del(globals.Ctx, keys...).Err()
}
