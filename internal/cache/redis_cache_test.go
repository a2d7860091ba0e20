package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/andymccutcheon/return-to-print/internal/errs"
	"github.com/andymccutcheon/return-to-print/internal/model"
)

func newTestCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()

	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr, NewRedisCache(rdb, ttl)
}

func TestRedisCache_MissReturnsNoData(t *testing.T) {
	t.Parallel()

	_, c := newTestCache(t, time.Minute)

	_, err := c.Get(context.Background())
	if !errs.IsNoData(err) {
		t.Fatalf("expected ErrNoData on miss, got: %v", err)
	}
}

func TestRedisCache_SetGetRoundTrip(t *testing.T) {
	t.Parallel()

	mr, c := newTestCache(t, 10*time.Second)
	ctx := context.Background()

	printedAt := time.Date(2026, 2, 2, 18, 0, 0, 0, time.UTC)
	msgs := []model.Message{
		{ID: "b", Name: "Bob", Content: "second", CreatedAt: printedAt.Add(time.Minute)},
		{ID: "a", Name: "Alice", Content: "first", CreatedAt: printedAt, Printed: true, PrintedAt: &printedAt},
	}

	if err := c.Set(ctx, msgs); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	if !mr.Exists(recentKey) {
		t.Fatalf("expected key %q to exist", recentKey)
	}
	if ttl := mr.TTL(recentKey); ttl <= 0 {
		t.Fatalf("expected TTL to be set, got %v", ttl)
	}

	got, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("expected order preserved, got %q, %q", got[0].ID, got[1].ID)
	}
	if !got[1].Printed || got[1].PrintedAt == nil {
		t.Fatalf("expected printed flags to survive the round trip, got %+v", got[1])
	}
}

func TestRedisCache_InvalidateRemovesKey(t *testing.T) {
	t.Parallel()

	mr, c := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, []model.Message{{ID: "a", Name: "Alice", Content: "hi"}}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}

	if mr.Exists(recentKey) {
		t.Fatalf("expected key %q to be gone", recentKey)
	}
	if _, err := c.Get(ctx); !errs.IsNoData(err) {
		t.Fatalf("expected ErrNoData after invalidate, got: %v", err)
	}
}

func TestRedisCache_ContextCanceled(t *testing.T) {
	t.Parallel()

	_, c := newTestCache(t, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Set(ctx, nil); err == nil {
		t.Fatalf("expected error due to canceled context, got nil")
	}
}
