package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	t.Cleanup(c.Stop)
	return c
}

func entryFor(domain string, ttl time.Duration) *core.ReputationEntry {
	age := 120
	now := time.Now()
	return &core.ReputationEntry{
		Domain:    domain,
		AgeDays:   &age,
		SSLValid:  true,
		LastSeen:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, entryFor("example.com", time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get(ctx, "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Domain != "example.com" || !got.SSLValid || got.AgeDays == nil || *got.AgeDays != 120 {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)
	if _, err := c.Get(context.Background(), "missing.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, entryFor("stale.com", -time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Get(ctx, "stale.com"); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, entryFor("gone.com", time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Delete(ctx, "gone.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Get(ctx, "gone.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, entryFor("fresh.com", time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, entryFor("stale.com", -time.Minute)); err != nil {
		t.Fatal(err)
	}

	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Get(ctx, "fresh.com"); err != nil {
		t.Errorf("fresh entry must survive cleanup, got %v", err)
	}
	if _, err := c.Get(ctx, "stale.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected stale entry removed, got %v", err)
	}
}
