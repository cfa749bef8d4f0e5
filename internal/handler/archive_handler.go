package handler

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/overlap-backend-go/internal/archive"
	"github.com/jengzang/overlap-backend-go/internal/service"
	"github.com/jengzang/overlap-backend-go/pkg/response"
)

// ArchiveHandler handles HTTP requests for archive ingestion
type ArchiveHandler struct {
	ingestService *service.IngestService
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(ingestService *service.IngestService) *ArchiveHandler {
	return &ArchiveHandler{ingestService: ingestService}
}

// UploadArchive handles POST /api/v1/archives. The archive comes as a
// multipart file; the user id defaults to the uploaded filename stem and
// can be overridden with the user_id form field.
func (h *ArchiveHandler) UploadArchive(c *gin.Context) {
	file, err := c.FormFile("archive")
	if err != nil {
		response.BadRequest(c, "Missing archive file")
		return
	}

	userID := c.PostForm("user_id")
	if userID == "" {
		userID = archive.UserID(file.Filename)
	}

	// Stage the upload; the zip reader needs a seekable file
	tmpDir, err := os.MkdirTemp("", "takeout-upload-*")
	if err != nil {
		response.InternalError(c, "Failed to stage upload")
		return
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		response.InternalError(c, "Failed to save upload")
		return
	}

	count, err := h.ingestService.IngestArchive(tmpPath, userID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"user_id": userID,
		"points":  count,
	})
}
