package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/openmelody/backend/internal/middleware"
	"github.com/openmelody/backend/internal/services"
	"github.com/openmelody/backend/pkg/response"
	"gorm.io/gorm"
)

type PlaylistHandler struct {
	playlistService *services.PlaylistService
	accessService   *services.AccessService
	activityService *services.ActivityService
}

func NewPlaylistHandler(db *gorm.DB) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: services.NewPlaylistService(db),
		accessService:   services.NewAccessService(db),
		activityService: services.NewActivityService(db),
	}
}

type createPlaylistRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create creates a playlist owned by the caller
// POST /api/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	playlistID, err := h.playlistService.Create(req.Name, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"playlistId": playlistID})
}

// List returns playlists the caller owns or collaborates on
// GET /api/playlists
func (h *PlaylistHandler) List(c *gin.Context) {
	playlists, err := h.playlistService.ListForUser(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"playlists": playlists})
}

// Delete deletes a playlist; only the owner may do this
// DELETE /api/playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID := c.Param("id")

	if err := h.accessService.VerifyOwner(playlistID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.playlistService.Delete(playlistID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "playlist deleted successfully"})
}

type playlistSongRequest struct {
	SongID string `json:"songId" binding:"required"`
}

// AddSong appends a song to a playlist; owner or collaborator
// POST /api/playlists/:id/songs
func (h *PlaylistHandler) AddSong(c *gin.Context) {
	var req playlistSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	playlistID := c.Param("id")
	userID := middleware.GetUserID(c)

	if err := h.accessService.VerifyAccess(playlistID, userID); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.playlistService.AddSong(playlistID, req.SongID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "song added to playlist"})
}

// GetWithSongs returns a playlist and its songs; owner or collaborator
// GET /api/playlists/:id/songs
func (h *PlaylistHandler) GetWithSongs(c *gin.Context) {
	playlistID := c.Param("id")

	if err := h.accessService.VerifyAccess(playlistID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	playlist, err := h.playlistService.GetWithSongs(playlistID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"playlist": playlist})
}

// RemoveSong removes one instance of a song from a playlist; owner or
// collaborator
// DELETE /api/playlists/:id/songs
func (h *PlaylistHandler) RemoveSong(c *gin.Context) {
	var req playlistSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	playlistID := c.Param("id")
	userID := middleware.GetUserID(c)

	if err := h.accessService.VerifyAccess(playlistID, userID); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.playlistService.RemoveSong(playlistID, req.SongID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "song removed from playlist"})
}

// ListActivities returns the playlist audit trail; owner or collaborator
// GET /api/playlists/:id/activities
func (h *PlaylistHandler) ListActivities(c *gin.Context) {
	playlistID := c.Param("id")

	if err := h.accessService.VerifyAccess(playlistID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	activities, err := h.activityService.ListByPlaylist(playlistID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"playlistId": playlistID,
		"activities": activities,
	})
}
