package services

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryLikeCache_MissThenHit(t *testing.T) {
	cache := NewMemoryLikeCache()
	ctx := context.Background()

	_, err := cache.Get(ctx, "album-1")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected cache miss, got %v", err)
	}

	if err := cache.Set(ctx, "album-1", 7); err != nil {
		t.Fatalf("set: %v", err)
	}

	count, err := cache.Get(ctx, "album-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, expected 7", count)
	}
}

func TestMemoryLikeCache_InvalidateRestoresMiss(t *testing.T) {
	cache := NewMemoryLikeCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "album-1", 3); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cache.Invalidate(ctx, "album-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	_, err := cache.Get(ctx, "album-1")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected cache miss after invalidate, got %v", err)
	}
}

func TestMemoryLikeCache_KeysAreIndependent(t *testing.T) {
	cache := NewMemoryLikeCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "album-1", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cache.Set(ctx, "album-2", 2); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cache.Invalidate(ctx, "album-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	count, err := cache.Get(ctx, "album-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, expected 2", count)
	}
}
