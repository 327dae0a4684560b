package services

import (
	"time"

	"github.com/openmelody/backend/internal/models"
	"gorm.io/gorm"
)

// ActivityService keeps the append-only audit trail of playlist membership
// changes. Records are inserted, never updated; playlist deletion cascades
// them away.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// ActivityEntry is an audit record joined with display names for the API.
type ActivityEntry struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   string    `json:"action"`
	Time     time.Time `json:"time"`
}

// Append writes one immutable activity record with a server-generated
// timestamp. Pass the transaction handle when the append must commit
// together with the membership mutation it describes.
func (s *ActivityService) Append(tx *gorm.DB, playlistID, songID, userID, action string) error {
	if tx == nil {
		tx = s.db
	}
	record := models.PlaylistActivity{
		ID:         models.NewID("activity"),
		PlaylistID: playlistID,
		SongID:     songID,
		UserID:     userID,
		Action:     action,
		Time:       time.Now().UTC(),
	}
	return tx.Create(&record).Error
}

// ListByPlaylist returns the playlist's full activity history, oldest
// first, joined with usernames and song titles.
func (s *ActivityService) ListByPlaylist(playlistID string) ([]ActivityEntry, error) {
	var entries []ActivityEntry
	err := s.db.Model(&models.PlaylistActivity{}).
		Select("users.username, songs.title, playlist_song_activities.action, playlist_song_activities.time").
		Joins("JOIN users ON users.id = playlist_song_activities.user_id").
		Joins("JOIN songs ON songs.id = playlist_song_activities.song_id").
		Where("playlist_song_activities.playlist_id = ?", playlistID).
		Order("playlist_song_activities.time ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
