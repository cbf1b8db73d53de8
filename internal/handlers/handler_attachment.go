package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khatapp/khata_backend/internal/apperrors"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/dto"
	"github.com/khatapp/khata_backend/internal/middleware"
)

// attachmentHandler handles HTTP requests related to entry attachments.
type attachmentHandler struct {
	attachmentService portssvc.AttachmentSvcFacade
}

func newAttachmentHandler(as portssvc.AttachmentSvcFacade) *attachmentHandler {
	return &attachmentHandler{attachmentService: as}
}

// registerAttachmentRoutes registers routes related to attachments. Reads and
// adds hang off the owning entry; deletes address attachments directly.
func registerAttachmentRoutes(rg *gin.RouterGroup, attachmentService portssvc.AttachmentSvcFacade) {
	h := newAttachmentHandler(attachmentService)

	entries := rg.Group("/entries/:id/attachments")
	{
		entries.POST("", h.addAttachments)
		entries.GET("", h.getAttachments)
	}
	rg.DELETE("/attachments", h.deleteAttachments)
}

func (h *attachmentHandler) addAttachments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")
	var req dto.AddAttachmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddAttachments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	attachments, err := h.attachmentService.AddAttachments(c.Request.Context(), entryID, req.Files)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else if errors.Is(err, apperrors.ErrForeignKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Entry no longer exists"})
		} else {
			logger.Error("Failed to add attachments in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to add attachments"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentResponseSlice(attachments))
}

func (h *attachmentHandler) getAttachments(c *gin.Context) {
	entryID := c.Param("id")

	attachments, err := h.attachmentService.GetAttachments(c.Request.Context(), entryID)
	if err != nil {
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to retrieve attachments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentResponseSlice(attachments))
}

func (h *attachmentHandler) deleteAttachments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DeleteAttachmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DeleteAttachments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.attachmentService.DeleteAttachments(c.Request.Context(), req.AttachmentIDs); err != nil {
		logger.Error("Failed to delete attachments in service", slog.String("error", err.Error()))
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to delete attachments"})
		return
	}

	c.Status(http.StatusNoContent)
}
