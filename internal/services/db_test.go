package services

import (
	"testing"

	"github.com/openmelody/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       models.NewID("user"),
		Username: username,
		Password: "irrelevant-hash",
		Fullname: username + " fullname",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestAlbum(t *testing.T, db *gorm.DB, name string) *models.Album {
	t.Helper()

	album := &models.Album{
		ID:   models.NewID("album"),
		Name: name,
		Year: 2021,
	}
	if err := db.Create(album).Error; err != nil {
		t.Fatalf("create album %s: %v", name, err)
	}
	return album
}

func createTestSong(t *testing.T, db *gorm.DB, title string) *models.Song {
	t.Helper()

	song := &models.Song{
		ID:        models.NewID("song"),
		Title:     title,
		Year:      2021,
		Genre:     "Indie",
		Performer: "The Fixtures",
	}
	if err := db.Create(song).Error; err != nil {
		t.Fatalf("create song %s: %v", title, err)
	}
	return song
}

func createTestPlaylist(t *testing.T, db *gorm.DB, name, ownerID string) *models.Playlist {
	t.Helper()

	playlist := &models.Playlist{
		ID:      models.NewID("playlist"),
		Name:    name,
		OwnerID: ownerID,
	}
	if err := db.Create(playlist).Error; err != nil {
		t.Fatalf("create playlist %s: %v", name, err)
	}
	return playlist
}

func grantCollaboration(t *testing.T, db *gorm.DB, playlistID, userID string) {
	t.Helper()

	collab := &models.Collaboration{
		ID:         models.NewID("collab"),
		PlaylistID: playlistID,
		UserID:     userID,
	}
	if err := db.Create(collab).Error; err != nil {
		t.Fatalf("grant collaboration: %v", err)
	}
}
