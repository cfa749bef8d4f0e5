package service

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/overlap-backend-go/internal/archive"
	"github.com/jengzang/overlap-backend-go/internal/normalize"
	"github.com/jengzang/overlap-backend-go/internal/repository"
)

const fixtureJSON = `{
  "timelineObjects": [
    {
      "activitySegment": {
        "duration": {"startTimestampMs": "1600000000000", "endTimestampMs": "1600001800000"},
        "startLocation": {"latitudeE7": 375000000, "longitudeE7": -1224000000},
        "endLocation": {"latitudeE7": 376000000, "longitudeE7": -1225000000},
        "activityType": "WALKING",
        "confidence": "HIGH"
      }
    }
  ]
}`

func writeFixtureArchive(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("Semantic Location History/2020/2020_SEPTEMBER.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(fixtureJSON))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestIngestArchive(t *testing.T) {
	pointRepo := repository.NewPointRepository(testDB(t))
	svc := NewIngestService(archive.NewLoader(normalize.New(false)), pointRepo)

	path := writeFixtureArchive(t, "carol.zip")

	// User id defaults to the archive filename stem
	count, err := svc.IngestArchive(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	points, err := pointRepo.GetUserPoints("carol")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "WALKING", points[0].Label)

	// Re-ingestion replaces, not accumulates
	count, err = svc.IngestArchive(path, "carol")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	points, err = pointRepo.GetUserPoints("carol")
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestIngestArchive_EmptyArchive(t *testing.T) {
	pointRepo := repository.NewPointRepository(testDB(t))
	svc := NewIngestService(archive.NewLoader(normalize.New(false)), pointRepo)

	path := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = svc.IngestArchive(path, "nobody")
	assert.Error(t, err)
}
