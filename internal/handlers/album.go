package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/openmelody/backend/internal/services"
	"github.com/openmelody/backend/pkg/response"
	"gorm.io/gorm"
)

type AlbumHandler struct {
	albumService *services.AlbumService
}

func NewAlbumHandler(db *gorm.DB) *AlbumHandler {
	return &AlbumHandler{
		albumService: services.NewAlbumService(db),
	}
}

// Create creates a new album
// POST /api/albums
func (h *AlbumHandler) Create(c *gin.Context) {
	var req services.AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	albumID, err := h.albumService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"albumId": albumID})
}

// GetByID returns an album with its songs
// GET /api/albums/:id
func (h *AlbumHandler) GetByID(c *gin.Context) {
	album, err := h.albumService.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"album": album})
}

// Update updates an album
// PUT /api/albums/:id
func (h *AlbumHandler) Update(c *gin.Context) {
	var req services.AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.albumService.Update(c.Param("id"), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "album updated successfully"})
}

// Delete deletes an album
// DELETE /api/albums/:id
func (h *AlbumHandler) Delete(c *gin.Context) {
	if err := h.albumService.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "album deleted successfully"})
}

type coverRequest struct {
	CoverURL string `json:"cover_url" binding:"required,url"`
}

// SetCover stores the album cover URL
// POST /api/albums/:id/cover
func (h *AlbumHandler) SetCover(c *gin.Context) {
	var req coverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.albumService.SetCoverURL(c.Param("id"), req.CoverURL); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "cover updated successfully"})
}
