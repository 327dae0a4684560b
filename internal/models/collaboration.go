package models

import "time"

// Collaboration grants a non-owner user write access to a playlist. A grant
// never confers ownership or delete rights.
type Collaboration struct {
	ID         string    `gorm:"primaryKey;size:50" json:"id"`
	PlaylistID string    `gorm:"uniqueIndex:idx_playlist_user;size:50;not null" json:"playlist_id"`
	Playlist   *Playlist `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"-"`
	UserID     string    `gorm:"uniqueIndex:idx_playlist_user;size:50;not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Collaboration) TableName() string { return "collaborations" }
