package models

import "time"

// AlbumLike records that a user likes an album. The unique index enforces
// the at-most-once invariant; the row count per album is the authoritative
// like total, of which the Redis counter is only a derived copy.
type AlbumLike struct {
	ID        string    `gorm:"primaryKey;size:50" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_user_album;size:50;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AlbumID   string    `gorm:"uniqueIndex:idx_user_album;size:50;not null" json:"album_id"`
	Album     *Album    `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (AlbumLike) TableName() string { return "user_album_likes" }
