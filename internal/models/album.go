package models

import "time"

// Album represents a music album. CoverURL points at external object
// storage; this service only stores the reference.
type Album struct {
	ID        string    `gorm:"primaryKey;size:50" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Year      int       `gorm:"not null" json:"year"`
	CoverURL  string    `gorm:"size:500" json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Album) TableName() string { return "albums" }
