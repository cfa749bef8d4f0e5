package service

import (
	"fmt"
	"log"

	"github.com/jengzang/overlap-backend-go/internal/archive"
	"github.com/jengzang/overlap-backend-go/internal/repository"
)

// IngestService handles business logic for archive ingestion
type IngestService struct {
	loader    *archive.Loader
	pointRepo *repository.PointRepository
}

// NewIngestService creates a new ingest service
func NewIngestService(loader *archive.Loader, pointRepo *repository.PointRepository) *IngestService {
	return &IngestService{
		loader:    loader,
		pointRepo: pointRepo,
	}
}

// IngestArchive normalizes the archive at path and persists the points
// under userID, replacing any previous ingestion of the same user. Returns
// the number of stored points.
func (s *IngestService) IngestArchive(path, userID string) (int, error) {
	if userID == "" {
		userID = archive.UserID(path)
	}

	points, err := s.loader.Load(path, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load archive: %w", err)
	}
	if len(points) == 0 {
		return 0, fmt.Errorf("archive contains no usable timeline records")
	}

	if err := s.pointRepo.DeleteUserPoints(userID); err != nil {
		return 0, err
	}
	if err := s.pointRepo.InsertBatch(points); err != nil {
		return 0, err
	}

	log.Printf("[IngestService] Stored %d points for user %s", len(points), userID)
	return len(points), nil
}
