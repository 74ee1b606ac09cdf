package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestRedisCache runs against a live server named by CHARTKIT_REDIS_ADDR.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("CHARTKIT_REDIS_ADDR")
	if addr == "" {
		t.Skip("CHARTKIT_REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "chartkit-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("hit after Clear")
	}
}
