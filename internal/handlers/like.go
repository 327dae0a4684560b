package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/openmelody/backend/internal/middleware"
	"github.com/openmelody/backend/internal/services"
	"github.com/openmelody/backend/pkg/response"
	"gorm.io/gorm"
)

type LikeHandler struct {
	likeService *services.AlbumLikeService
}

func NewLikeHandler(db *gorm.DB, cache services.LikeCache) *LikeHandler {
	return &LikeHandler{
		likeService: services.NewAlbumLikeService(db, cache),
	}
}

// Like records the caller's like on an album
// POST /api/albums/:id/likes
func (h *LikeHandler) Like(c *gin.Context) {
	err := h.likeService.Like(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "album liked"})
}

// Unlike removes the caller's like from an album
// DELETE /api/albums/:id/likes
func (h *LikeHandler) Unlike(c *gin.Context) {
	err := h.likeService.Unlike(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "like removed"})
}

// Count returns the album like count. The X-Data-Source header reports
// whether the value came from the cache or the database.
// GET /api/albums/:id/likes
func (h *LikeHandler) Count(c *gin.Context) {
	count, source, err := h.likeService.GetCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("X-Data-Source", source)
	response.Success(c, gin.H{"likes": count})
}
