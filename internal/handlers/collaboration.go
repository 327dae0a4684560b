package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/openmelody/backend/internal/middleware"
	"github.com/openmelody/backend/internal/services"
	"github.com/openmelody/backend/pkg/response"
	"gorm.io/gorm"
)

type CollaborationHandler struct {
	collabService *services.CollaborationService
	accessService *services.AccessService
}

func NewCollaborationHandler(db *gorm.DB) *CollaborationHandler {
	return &CollaborationHandler{
		collabService: services.NewCollaborationService(db),
		accessService: services.NewAccessService(db),
	}
}

type collaborationRequest struct {
	PlaylistID string `json:"playlistId" binding:"required"`
	UserID     string `json:"userId" binding:"required"`
}

// Add grants a user collaborator access; only the playlist owner may grant
// POST /api/collaborations
func (h *CollaborationHandler) Add(c *gin.Context) {
	var req collaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.accessService.VerifyOwner(req.PlaylistID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	collabID, err := h.collabService.Add(req.PlaylistID, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"collaborationId": collabID})
}

// Remove revokes a collaborator grant; only the playlist owner may revoke
// DELETE /api/collaborations
func (h *CollaborationHandler) Remove(c *gin.Context) {
	var req collaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.accessService.VerifyOwner(req.PlaylistID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.collabService.Remove(req.PlaylistID, req.UserID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "collaboration removed"})
}
