package models

import "time"

// Playlist is owned by exactly one user. The owner is immutable after
// creation; deleting a playlist cascades to its song memberships,
// collaboration grants and activity records.
type Playlist struct {
	ID        string    `gorm:"primaryKey;size:50" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	OwnerID   string    `gorm:"index;size:50;not null" json:"owner"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Playlist) TableName() string { return "playlists" }

// PlaylistSong is a song-in-playlist membership row. Duplicates are
// allowed: the same song may be added more than once, each add creating
// its own row.
type PlaylistSong struct {
	ID         string    `gorm:"primaryKey;size:50" json:"id"`
	PlaylistID string    `gorm:"index;size:50;not null" json:"playlist_id"`
	Playlist   *Playlist `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"-"`
	SongID     string    `gorm:"index;size:50;not null" json:"song_id"`
	Song       *Song     `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func (PlaylistSong) TableName() string { return "playlist_songs" }
