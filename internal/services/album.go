package services

import (
	"errors"

	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/pkg/apperr"
	"gorm.io/gorm"
)

type AlbumService struct {
	db *gorm.DB
}

func NewAlbumService(db *gorm.DB) *AlbumService {
	return &AlbumService{db: db}
}

type AlbumRequest struct {
	Name string `json:"name" binding:"required"`
	Year int    `json:"year" binding:"required"`
}

// AlbumDetail is an album with its songs for the detail endpoint.
type AlbumDetail struct {
	models.Album
	Songs []SongSummary `json:"songs"`
}

func (s *AlbumService) Create(req *AlbumRequest) (string, error) {
	album := models.Album{
		ID:   models.NewID("album"),
		Name: req.Name,
		Year: req.Year,
	}
	if err := s.db.Create(&album).Error; err != nil {
		return "", err
	}
	return album.ID, nil
}

func (s *AlbumService) GetByID(id string) (*AlbumDetail, error) {
	var album models.Album
	err := s.db.First(&album, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("album not found")
	}
	if err != nil {
		return nil, err
	}

	var songs []SongSummary
	err = s.db.Model(&models.Song{}).
		Select("id, title, performer").
		Where("album_id = ?", id).
		Scan(&songs).Error
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []SongSummary{}
	}

	return &AlbumDetail{Album: album, Songs: songs}, nil
}

func (s *AlbumService) Update(id string, req *AlbumRequest) error {
	result := s.db.Model(&models.Album{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": req.Name, "year": req.Year})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("album not found")
	}
	return nil
}

func (s *AlbumService) Delete(id string) error {
	result := s.db.Delete(&models.Album{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("album not found")
	}
	return nil
}

// SetCoverURL stores the externally hosted cover reference.
func (s *AlbumService) SetCoverURL(id, coverURL string) error {
	result := s.db.Model(&models.Album{}).
		Where("id = ?", id).
		Update("cover_url", coverURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("album not found")
	}
	return nil
}
