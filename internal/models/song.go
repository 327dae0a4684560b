package models

import "time"

// Song represents a track, optionally attached to an album.
type Song struct {
	ID        string    `gorm:"primaryKey;size:50" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Year      int       `gorm:"not null" json:"year"`
	Genre     string    `gorm:"size:100;not null" json:"genre"`
	Performer string    `gorm:"size:200;not null" json:"performer"`
	Duration  *int      `json:"duration,omitempty"`
	AlbumID   *string   `gorm:"index;size:50" json:"album_id,omitempty"`
	Album     *Album    `gorm:"foreignKey:AlbumID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Song) TableName() string { return "songs" }
