package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/openmelody/backend/internal/middleware"
	"github.com/openmelody/backend/internal/services"
	"github.com/openmelody/backend/pkg/response"
	"gorm.io/gorm"
)

type ExportHandler struct {
	accessService *services.AccessService
	queue         services.ExportQueue
}

func NewExportHandler(db *gorm.DB, queue services.ExportQueue) *ExportHandler {
	return &ExportHandler{
		accessService: services.NewAccessService(db),
		queue:         queue,
	}
}

type exportRequest struct {
	TargetEmail string `json:"targetEmail" binding:"required,email"`
}

// Export enqueues a playlist export; only the owner may export. The
// request is accepted once the message is durably queued, delivery
// happens out of band.
// POST /api/export/playlists/:id
func (h *ExportHandler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	playlistID := c.Param("id")

	if err := h.accessService.VerifyOwner(playlistID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	task := &services.ExportTask{
		PlaylistID:  playlistID,
		TargetEmail: req.TargetEmail,
	}
	if err := h.queue.Submit(task); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "export request queued"})
}
