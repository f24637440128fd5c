package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestNewRedisCacheErrors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"bad scheme", "http://127.0.0.1:6379"},
		{"bad db", "redis://127.0.0.1:6379/notadb"},
		{"unreachable", "redis://127.0.0.1:1/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			c, err := NewRedisCache(ctx, tt.url)
			if err == nil {
				c.Close()
				t.Fatalf("NewRedisCache(%q) succeeded", tt.url)
			}
		})
	}
}

// TestRedisCache runs against the server named by NODECANVAS_TEST_REDIS_URL.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("NODECANVAS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("NODECANVAS_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	c.prefix = RedisKeyPrefix + "test:" + t.Name() + ":"

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get missing = %v, %v; want a miss", hit, err)
	}
	if err := c.Set(ctx, "frame", []byte("<svg/>"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "frame")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "frame"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "frame"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "frame"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}
