package services

import (
	"errors"

	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/pkg/apperr"
	"gorm.io/gorm"
)

// AccessService is the single authorization primitive for playlist
// mutations. Every playlist-mutating operation must pass through
// VerifyOwner or VerifyAccess before acting; results are never cached
// across requests.
type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// VerifyOwner succeeds silently when userID owns the playlist. A missing
// playlist is NotFound; an existing playlist with a different owner is
// Forbidden.
func (s *AccessService) VerifyOwner(playlistID, userID string) error {
	var playlist models.Playlist
	err := s.db.Select("id", "owner_id").First(&playlist, "id = ?", playlistID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("playlist not found")
	}
	if err != nil {
		return err
	}
	if playlist.OwnerID != userID {
		return apperr.Forbidden("user is not the playlist owner")
	}
	return nil
}

// VerifyAccess runs the prioritized check list: owner first, collaborator
// second. The collaborator fallback only applies to a Forbidden outcome;
// NotFound from the owner check is returned as-is so a nonexistent playlist
// is never reported as forbidden.
func (s *AccessService) VerifyAccess(playlistID, userID string) error {
	ownerErr := s.VerifyOwner(playlistID, userID)
	if ownerErr == nil || !apperr.IsKind(ownerErr, apperr.KindForbidden) {
		return ownerErr
	}

	var count int64
	err := s.db.Model(&models.Collaboration{}).
		Where("playlist_id = ? AND user_id = ?", playlistID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	// Not a collaborator either; surface the original Forbidden.
	return ownerErr
}
