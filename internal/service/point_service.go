package service

import (
	"fmt"
	"math"

	"github.com/jengzang/overlap-backend-go/internal/models"
	"github.com/jengzang/overlap-backend-go/internal/repository"
)

// PointService handles business logic for querying normalized points
type PointService struct {
	pointRepo *repository.PointRepository
}

// NewPointService creates a new point service
func NewPointService(pointRepo *repository.PointRepository) *PointService {
	return &PointService{pointRepo: pointRepo}
}

// GetPoints retrieves points with filtering and pagination
func (s *PointService) GetPoints(filter models.PointFilter) (*models.PointsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	points, total, err := s.pointRepo.GetPoints(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get points: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))
	return &models.PointsResponse{
		Data:       points,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListUsers returns every ingested user with its point count and time span
func (s *PointService) ListUsers() ([]models.UserSummary, error) {
	users, err := s.pointRepo.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
