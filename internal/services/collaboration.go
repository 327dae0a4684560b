package services

import (
	"errors"

	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/pkg/apperr"
	"gorm.io/gorm"
)

// CollaborationService manages delegation grants. Grants confer membership
// access, never ownership; the owner is implied and never stored as a grant.
type CollaborationService struct {
	db *gorm.DB
}

func NewCollaborationService(db *gorm.DB) *CollaborationService {
	return &CollaborationService{db: db}
}

// Add grants userID collaborator access to the playlist and returns the
// grant id. The grantee must exist and may not be the owner.
func (s *CollaborationService) Add(playlistID, userID string) (string, error) {
	var user models.User
	err := s.db.Select("id").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.NotFound("user not found")
	}
	if err != nil {
		return "", err
	}

	var playlist models.Playlist
	err = s.db.Select("id", "owner_id").First(&playlist, "id = ?", playlistID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.NotFound("playlist not found")
	}
	if err != nil {
		return "", err
	}
	if playlist.OwnerID == userID {
		return "", apperr.Conflict("owner cannot be added as a collaborator")
	}

	var count int64
	if err := s.db.Model(&models.Collaboration{}).
		Where("playlist_id = ? AND user_id = ?", playlistID, userID).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", apperr.Conflict("user is already a collaborator")
	}

	grant := models.Collaboration{
		ID:         models.NewID("collab"),
		PlaylistID: playlistID,
		UserID:     userID,
	}
	if err := s.db.Create(&grant).Error; err != nil {
		return "", err
	}
	return grant.ID, nil
}

// Remove revokes a grant.
func (s *CollaborationService) Remove(playlistID, userID string) error {
	result := s.db.Delete(&models.Collaboration{}, "playlist_id = ? AND user_id = ?", playlistID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("collaboration not found")
	}
	return nil
}
