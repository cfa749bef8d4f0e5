package service

import (
	"fmt"
	"log"

	"github.com/jengzang/overlap-backend-go/internal/models"
	"github.com/jengzang/overlap-backend-go/internal/overlap"
	"github.com/jengzang/overlap-backend-go/internal/repository"
)

// OverlapService handles business logic for co-presence detection over
// stored point streams
type OverlapService struct {
	pointRepo *repository.PointRepository
	matchRepo *repository.MatchRepository

	defaultTimeMin int64
	defaultDistKm  float64
}

// NewOverlapService creates a new overlap service with the configured
// default thresholds
func NewOverlapService(pointRepo *repository.PointRepository, matchRepo *repository.MatchRepository, defaultTimeMin int64, defaultDistKm float64) *OverlapService {
	return &OverlapService{
		pointRepo:      pointRepo,
		matchRepo:      matchRepo,
		defaultTimeMin: defaultTimeMin,
		defaultDistKm:  defaultDistKm,
	}
}

// Detect merges both users' stored streams, runs the single-pass detector
// and persists the resulting matches, replacing any previous run for the
// pair.
func (s *OverlapService) Detect(req models.OverlapRequest) (*models.OverlapResult, error) {
	if req.UserA == req.UserB {
		return nil, fmt.Errorf("overlap detection needs two distinct users")
	}

	timeMin := s.defaultTimeMin
	if req.TimeThresholdMin != nil && *req.TimeThresholdMin > 0 {
		timeMin = *req.TimeThresholdMin
	}
	distKm := s.defaultDistKm
	if req.DistThresholdKm != nil && *req.DistThresholdKm > 0 {
		distKm = *req.DistThresholdKm
	}

	pointsA, err := s.pointRepo.GetUserPoints(req.UserA)
	if err != nil {
		return nil, err
	}
	if len(pointsA) == 0 {
		return nil, fmt.Errorf("no points ingested for user %s", req.UserA)
	}
	pointsB, err := s.pointRepo.GetUserPoints(req.UserB)
	if err != nil {
		return nil, err
	}
	if len(pointsB) == 0 {
		return nil, fmt.Errorf("no points ingested for user %s", req.UserB)
	}

	merged := overlap.Merge(pointsA, pointsB)
	detector := overlap.NewDetector(req.UserA, req.UserB, timeMin, distKm)
	matches, err := detector.Detect(merged)
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}

	if err := s.matchRepo.DeletePairMatches(req.UserA, req.UserB); err != nil {
		return nil, err
	}
	if err := s.matchRepo.InsertBatch(req.UserA, req.UserB, matches); err != nil {
		return nil, err
	}

	log.Printf("[OverlapService] %s vs %s: %d points scanned, %d matches (%d min, %.3f km)",
		req.UserA, req.UserB, len(merged), len(matches), timeMin, distKm)

	return &models.OverlapResult{
		UserA:            req.UserA,
		UserB:            req.UserB,
		TimeThresholdMin: timeMin,
		DistThresholdKm:  distKm,
		PointsScanned:    len(merged),
		Matches:          matches,
	}, nil
}

// GetMatches returns previously stored matches for a pair
func (s *OverlapService) GetMatches(filter models.MatchFilter) (*models.MatchesResponse, error) {
	if filter.UserA == "" || filter.UserB == "" {
		return nil, fmt.Errorf("userA and userB are required")
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}

	matches, total, err := s.matchRepo.GetMatches(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return &models.MatchesResponse{
		Data:       matches,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}
