// Package testutil provides test helpers shared across the portal client packages.
package testutil

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisAddr = "localhost:6379"
	// defaultRedisDB keeps test data away from DB 0, where a developer's own
	// portal session may live.
	defaultRedisDB = 15
)

// SetupTestRedis connects to the Redis named by REDIS_ADDR (default
// localhost:6379), selects TEST_REDIS_DB (default 15) and empties it. The test
// is skipped when Redis is unreachable unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(tb testing.TB) *redis.Client {
	tb.Helper()

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		addr = defaultRedisAddr
	}
	db := defaultRedisDB
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			db = i
		} else {
			tb.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
		}
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if requireRedis() {
			tb.Fatalf("Redis not available for testing at %s: %v", addr, err)
		}
		tb.Skipf("Redis not available for testing at %s: %v", addr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		tb.Fatalf("flush redis db %d: %v", db, err)
	}
	return client
}

func requireRedis() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TEST_REQUIRE_REDIS"))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
