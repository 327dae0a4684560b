package services

import (
	"errors"

	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/pkg/apperr"
	"gorm.io/gorm"
)

type SongService struct {
	db *gorm.DB
}

func NewSongService(db *gorm.DB) *SongService {
	return &SongService{db: db}
}

type SongRequest struct {
	Title     string  `json:"title" binding:"required"`
	Year      int     `json:"year" binding:"required"`
	Genre     string  `json:"genre" binding:"required"`
	Performer string  `json:"performer" binding:"required"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"album_id"`
}

type SongListRequest struct {
	Title     string `form:"title"`
	Performer string `form:"performer"`
}

func (s *SongService) Create(req *SongRequest) (string, error) {
	song := models.Song{
		ID:        models.NewID("song"),
		Title:     req.Title,
		Year:      req.Year,
		Genre:     req.Genre,
		Performer: req.Performer,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
	}
	if err := s.db.Create(&song).Error; err != nil {
		return "", err
	}
	return song.ID, nil
}

// List returns song summaries, optionally filtered by title and performer
// substrings.
func (s *SongService) List(req *SongListRequest) ([]SongSummary, error) {
	query := s.db.Model(&models.Song{}).Select("id, title, performer")

	if req.Title != "" {
		query = query.Where("title LIKE ?", "%"+req.Title+"%")
	}
	if req.Performer != "" {
		query = query.Where("performer LIKE ?", "%"+req.Performer+"%")
	}

	var songs []SongSummary
	if err := query.Scan(&songs).Error; err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []SongSummary{}
	}
	return songs, nil
}

func (s *SongService) GetByID(id string) (*models.Song, error) {
	var song models.Song
	err := s.db.First(&song, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("song not found")
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *SongService) Update(id string, req *SongRequest) error {
	result := s.db.Model(&models.Song{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":     req.Title,
			"year":      req.Year,
			"genre":     req.Genre,
			"performer": req.Performer,
			"duration":  req.Duration,
			"album_id":  req.AlbumID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("song not found")
	}
	return nil
}

func (s *SongService) Delete(id string) error {
	result := s.db.Delete(&models.Song{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("song not found")
	}
	return nil
}
