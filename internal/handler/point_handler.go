package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/overlap-backend-go/internal/models"
	"github.com/jengzang/overlap-backend-go/internal/service"
	"github.com/jengzang/overlap-backend-go/pkg/response"
)

// PointHandler handles HTTP requests for normalized points
type PointHandler struct {
	pointService *service.PointService
}

// NewPointHandler creates a new point handler
func NewPointHandler(pointService *service.PointService) *PointHandler {
	return &PointHandler{pointService: pointService}
}

// GetPoints handles GET /api/v1/points
func (h *PointHandler) GetPoints(c *gin.Context) {
	var filter models.PointFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.pointService.GetPoints(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetUsers handles GET /api/v1/users
func (h *PointHandler) GetUsers(c *gin.Context) {
	users, err := h.pointService.ListUsers()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  users,
		"count": len(users),
	})
}
