package models

import "time"

// Activity actions recorded for playlist membership changes.
const (
	ActivityActionAdd    = "add"
	ActivityActionDelete = "delete"
)

// PlaylistActivity is an append-only audit record of a single membership
// mutation. Rows are never updated; they disappear only when their playlist
// is deleted.
type PlaylistActivity struct {
	ID         string    `gorm:"primaryKey;size:50" json:"id"`
	PlaylistID string    `gorm:"index;size:50;not null" json:"playlist_id"`
	Playlist   *Playlist `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"-"`
	SongID     string    `gorm:"size:50;not null" json:"song_id"`
	UserID     string    `gorm:"size:50;not null" json:"user_id"`
	Action     string    `gorm:"size:10;not null" json:"action"` // add, delete
	Time       time.Time `gorm:"index;not null" json:"time"`
}

func (PlaylistActivity) TableName() string { return "playlist_song_activities" }
