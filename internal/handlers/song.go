package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/openmelody/backend/internal/services"
	"github.com/openmelody/backend/pkg/response"
	"gorm.io/gorm"
)

type SongHandler struct {
	songService *services.SongService
}

func NewSongHandler(db *gorm.DB) *SongHandler {
	return &SongHandler{
		songService: services.NewSongService(db),
	}
}

// Create creates a new song
// POST /api/songs
func (h *SongHandler) Create(c *gin.Context) {
	var req services.SongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	songID, err := h.songService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"songId": songID})
}

// List returns songs, optionally filtered by title and performer
// GET /api/songs
func (h *SongHandler) List(c *gin.Context) {
	var req services.SongListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	songs, err := h.songService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"songs": songs})
}

// GetByID returns a song by ID
// GET /api/songs/:id
func (h *SongHandler) GetByID(c *gin.Context) {
	song, err := h.songService.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"song": song})
}

// Update updates a song
// PUT /api/songs/:id
func (h *SongHandler) Update(c *gin.Context) {
	var req services.SongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.songService.Update(c.Param("id"), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "song updated successfully"})
}

// Delete deletes a song
// DELETE /api/songs/:id
func (h *SongHandler) Delete(c *gin.Context) {
	if err := h.songService.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "song deleted successfully"})
}
