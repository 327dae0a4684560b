package services

import (
	"context"
	"errors"

	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/pkg/apperr"
	"github.com/openmelody/backend/pkg/logger"
	"gorm.io/gorm"
)

// Like count sources reported to the caller.
const (
	SourceCache    = "cache"
	SourceDatabase = "database"
)

// AlbumLikeService owns the like/unlike mutations and the cache-aside
// counter read path. The relational table is the system of record; the
// cache only ever holds a lazily recomputed copy.
type AlbumLikeService struct {
	db    *gorm.DB
	cache LikeCache
}

func NewAlbumLikeService(db *gorm.DB, cache LikeCache) *AlbumLikeService {
	return &AlbumLikeService{db: db, cache: cache}
}

// Like records that userID likes albumID. The album must exist; a second
// like without an intervening unlike is a Conflict. The write invalidates
// the album's cached counter.
func (s *AlbumLikeService) Like(ctx context.Context, userID, albumID string) error {
	var album models.Album
	err := s.db.Select("id").First(&album, "id = ?", albumID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("album not found")
	}
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.AlbumLike{}).
		Where("user_id = ? AND album_id = ?", userID, albumID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("album already liked")
	}

	like := models.AlbumLike{
		ID:      models.NewID("like"),
		UserID:  userID,
		AlbumID: albumID,
	}
	if err := s.db.Create(&like).Error; err != nil {
		return err
	}

	return s.invalidate(ctx, albumID)
}

// Unlike removes the user's like. Unliking an album that was never liked
// is NotFound. The write invalidates the album's cached counter.
func (s *AlbumLikeService) Unlike(ctx context.Context, userID, albumID string) error {
	result := s.db.Delete(&models.AlbumLike{}, "user_id = ? AND album_id = ?", userID, albumID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("like not found")
	}

	return s.invalidate(ctx, albumID)
}

// GetCount returns the album's like total and where it came from. A cache
// hit answers directly; a miss or cache failure falls through to the
// authoritative COUNT(*) and repopulates the cache best-effort.
func (s *AlbumLikeService) GetCount(ctx context.Context, albumID string) (int64, string, error) {
	cached, err := s.cache.Get(ctx, albumID)
	if err == nil {
		return cached, SourceCache, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		// Cache unavailability on read degrades to a database read.
		logger.Warn().Err(err).Str("album_id", albumID).Msg("like cache read failed, falling back to database")
	}

	var count int64
	if err := s.db.Model(&models.AlbumLike{}).
		Where("album_id = ?", albumID).
		Count(&count).Error; err != nil {
		return 0, "", err
	}

	if err := s.cache.Set(ctx, albumID, count); err != nil {
		logger.Warn().Err(err).Str("album_id", albumID).Msg("like cache repopulate failed")
	}

	return count, SourceDatabase, nil
}

// invalidate deletes the cached counter so the next read recomputes from
// source. A failed invalidation would leave a stale entry with no repair
// path, so it fails the mutation as Transient.
func (s *AlbumLikeService) invalidate(ctx context.Context, albumID string) error {
	if err := s.cache.Invalidate(ctx, albumID); err != nil {
		return apperr.Transient("like cache invalidation failed", err)
	}
	return nil
}
