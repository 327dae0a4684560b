package services

import (
	"errors"

	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/pkg/apperr"
	"gorm.io/gorm"
)

type PlaylistService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewPlaylistService(db *gorm.DB) *PlaylistService {
	return &PlaylistService{
		db:       db,
		activity: NewActivityService(db),
	}
}

type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

type PlaylistDetail struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Songs    []SongSummary `json:"songs"`
}

// Create stores a new playlist owned by ownerID and returns its id.
// Ownership is fixed at creation.
func (s *PlaylistService) Create(name, ownerID string) (string, error) {
	playlist := models.Playlist{
		ID:      models.NewID("playlist"),
		Name:    name,
		OwnerID: ownerID,
	}
	if err := s.db.Create(&playlist).Error; err != nil {
		return "", err
	}
	return playlist.ID, nil
}

// ListForUser returns playlists the user owns plus those they collaborate
// on, each with the owner's username.
func (s *PlaylistService) ListForUser(userID string) ([]PlaylistSummary, error) {
	var summaries []PlaylistSummary
	err := s.db.Model(&models.Playlist{}).
		Select("DISTINCT playlists.id, playlists.name, users.username").
		Joins("LEFT JOIN users ON users.id = playlists.owner_id").
		Joins("LEFT JOIN collaborations ON collaborations.playlist_id = playlists.id").
		Where("playlists.owner_id = ? OR collaborations.user_id = ?", userID, userID).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete removes a playlist. Memberships, grants and activity records go
// with it via FK cascade. Caller must have verified ownership.
func (s *PlaylistService) Delete(playlistID string) error {
	result := s.db.Delete(&models.Playlist{}, "id = ?", playlistID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("playlist not found")
	}
	return nil
}

// AddSong appends a membership row for songID. The song must exist; the
// membership insert and its audit record commit in one transaction.
// Duplicate memberships are allowed.
func (s *PlaylistService) AddSong(playlistID, songID, userID string) error {
	var song models.Song
	err := s.db.Select("id").First(&song, "id = ?", songID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("song not found")
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		membership := models.PlaylistSong{
			ID:         models.NewID("ps"),
			PlaylistID: playlistID,
			SongID:     songID,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		return s.activity.Append(tx, playlistID, songID, userID, models.ActivityActionAdd)
	})
}

// RemoveSong deletes at most one matching membership row; when the same
// song was added multiple times the remaining rows stay. The delete and
// its audit record commit in one transaction.
func (s *PlaylistService) RemoveSong(playlistID, songID, userID string) error {
	var membership models.PlaylistSong
	err := s.db.Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Order("created_at ASC").
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("song not found in playlist")
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.PlaylistSong{}, "id = ?", membership.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("song not found in playlist")
		}
		return s.activity.Append(tx, playlistID, songID, userID, models.ActivityActionDelete)
	})
}

// GetWithSongs returns the playlist, its owner's username and its full
// song membership (duplicates included, in insertion order).
func (s *PlaylistService) GetWithSongs(playlistID string) (*PlaylistDetail, error) {
	var header struct {
		ID       string
		Name     string
		Username string
	}
	err := s.db.Model(&models.Playlist{}).
		Select("playlists.id, playlists.name, users.username").
		Joins("JOIN users ON users.id = playlists.owner_id").
		Where("playlists.id = ?", playlistID).
		Scan(&header).Error
	if err != nil {
		return nil, err
	}
	if header.ID == "" {
		return nil, apperr.NotFound("playlist not found")
	}
	detail := PlaylistDetail{
		ID:       header.ID,
		Name:     header.Name,
		Username: header.Username,
	}

	var songs []SongSummary
	err = s.db.Model(&models.PlaylistSong{}).
		Select("songs.id, songs.title, songs.performer").
		Joins("JOIN songs ON songs.id = playlist_songs.song_id").
		Where("playlist_songs.playlist_id = ?", playlistID).
		Order("playlist_songs.created_at ASC").
		Scan(&songs).Error
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []SongSummary{}
	}
	detail.Songs = songs
	return &detail, nil
}
