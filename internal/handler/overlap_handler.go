package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/overlap-backend-go/internal/models"
	"github.com/jengzang/overlap-backend-go/internal/overlap"
	"github.com/jengzang/overlap-backend-go/internal/service"
	"github.com/jengzang/overlap-backend-go/pkg/response"
)

// OverlapHandler handles HTTP requests for co-presence detection
type OverlapHandler struct {
	overlapService *service.OverlapService
}

// NewOverlapHandler creates a new overlap handler
func NewOverlapHandler(overlapService *service.OverlapService) *OverlapHandler {
	return &OverlapHandler{overlapService: overlapService}
}

// DetectOverlaps handles POST /api/v1/overlaps
func (h *OverlapHandler) DetectOverlaps(c *gin.Context) {
	var req models.OverlapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.overlapService.Detect(req)
	if err != nil {
		// A stream point attributed to neither user means the stored
		// data and the request disagree; surface it as a server fault
		if errors.Is(err, overlap.ErrUnknownUser) {
			response.InternalError(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetMatches handles GET /api/v1/overlaps
func (h *OverlapHandler) GetMatches(c *gin.Context) {
	var filter models.MatchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.overlapService.GetMatches(filter)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, result)
}
