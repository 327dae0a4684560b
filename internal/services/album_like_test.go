package services

import (
	"context"
	"errors"
	"testing"

	"github.com/openmelody/backend/pkg/apperr"
)

// failingLikeCache fails every operation, to exercise the degraded paths.
type failingLikeCache struct{}

func (failingLikeCache) Get(ctx context.Context, albumID string) (int64, error) {
	return 0, errors.New("cache down")
}
func (failingLikeCache) Set(ctx context.Context, albumID string, count int64) error {
	return errors.New("cache down")
}
func (failingLikeCache) Invalidate(ctx context.Context, albumID string) error {
	return errors.New("cache down")
}

func TestAlbumLike_MissingAlbumNotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "fan")

	svc := NewAlbumLikeService(db, NewMemoryLikeCache())
	err := svc.Like(context.Background(), user.ID, "album-missing")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestAlbumLike_SecondLikeConflicts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "fan")
	album := createTestAlbum(t, db, "Debut")

	svc := NewAlbumLikeService(db, NewMemoryLikeCache())
	ctx := context.Background()

	if err := svc.Like(ctx, user.ID, album.ID); err != nil {
		t.Fatalf("first like: %v", err)
	}
	err := svc.Like(ctx, user.ID, album.ID)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("second like should conflict, got %v", err)
	}

	count, _, err := svc.GetCount(ctx, album.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, expected 1", count)
	}
}

func TestAlbumUnlike_NeverLikedNotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "fan")
	album := createTestAlbum(t, db, "Debut")

	svc := NewAlbumLikeService(db, NewMemoryLikeCache())
	err := svc.Unlike(context.Background(), user.ID, album.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestAlbumLikeCount_DatabaseThenCache(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "fan")
	album := createTestAlbum(t, db, "Debut")

	svc := NewAlbumLikeService(db, NewMemoryLikeCache())
	ctx := context.Background()

	if err := svc.Like(ctx, user.ID, album.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	// First read after a mutation misses the cache and repopulates it.
	count, source, err := svc.GetCount(ctx, album.ID)
	if err != nil {
		t.Fatalf("first count: %v", err)
	}
	if count != 1 || source != SourceDatabase {
		t.Errorf("first read = %d from %q, expected 1 from database", count, source)
	}

	count, source, err = svc.GetCount(ctx, album.ID)
	if err != nil {
		t.Fatalf("second count: %v", err)
	}
	if count != 1 || source != SourceCache {
		t.Errorf("second read = %d from %q, expected 1 from cache", count, source)
	}
}

func TestAlbumLikeCount_MutationInvalidatesCache(t *testing.T) {
	db := newTestDB(t)
	first := createTestUser(t, db, "first")
	second := createTestUser(t, db, "second")
	album := createTestAlbum(t, db, "Debut")

	svc := NewAlbumLikeService(db, NewMemoryLikeCache())
	ctx := context.Background()

	if err := svc.Like(ctx, first.ID, album.ID); err != nil {
		t.Fatalf("first like: %v", err)
	}
	if _, _, err := svc.GetCount(ctx, album.ID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if err := svc.Like(ctx, second.ID, album.ID); err != nil {
		t.Fatalf("second like: %v", err)
	}

	// The stale cached value must be gone, never served.
	count, source, err := svc.GetCount(ctx, album.ID)
	if err != nil {
		t.Fatalf("count after mutation: %v", err)
	}
	if count != 2 || source != SourceDatabase {
		t.Errorf("read after mutation = %d from %q, expected 2 from database", count, source)
	}
}

func TestAlbumLikeCount_CacheFailureFallsBack(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "fan")
	album := createTestAlbum(t, db, "Debut")

	// Seed via a working cache, then read through a broken one.
	working := NewAlbumLikeService(db, NewMemoryLikeCache())
	if err := working.Like(context.Background(), user.ID, album.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	svc := NewAlbumLikeService(db, failingLikeCache{})
	count, source, err := svc.GetCount(context.Background(), album.ID)
	if err != nil {
		t.Fatalf("count with broken cache: %v", err)
	}
	if count != 1 || source != SourceDatabase {
		t.Errorf("read = %d from %q, expected 1 from database", count, source)
	}
}

func TestAlbumLike_InvalidationFailureIsTransient(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "fan")
	album := createTestAlbum(t, db, "Debut")

	svc := NewAlbumLikeService(db, failingLikeCache{})
	err := svc.Like(context.Background(), user.ID, album.ID)
	if !apperr.IsKind(err, apperr.KindTransient) {
		t.Errorf("failed invalidation should surface as transient, got %v", err)
	}
}
