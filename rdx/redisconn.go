package rdx

import (
	"log"
	"os"

	"ultrarent/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis not reachable at %s: %v", addr, err)
	}
}

// --- token/session helpers ---

func RdxHset(hash, key, value string) error {
	return Conn.HSet(globals.Ctx, hash, key, value).Err()
}

func RdxHget(hash, key string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, key).Result()
}

func RdxHdel(hash, key string) error {
	return Conn.HDel(globals.Ctx, hash, key).Err()
}
