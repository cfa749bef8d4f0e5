package archive

import (
	"archive/zip"
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/overlap-backend-go/internal/normalize"
)

const timelineJSON = `{
  "timelineObjects": [
    {
      "placeVisit": {
        "location": {
          "placeId": "ChIJhome",
          "latitudeE7": 375000000,
          "longitudeE7": -1224000000,
          "name": "Home"
        },
        "duration": {
          "startTimestampMs": "1600000000000",
          "endTimestampMs": "1600003600000"
        },
        "visitConfidence": 95
      }
    },
    {
      "activitySegment": {
        "duration": {
          "startTimestampMs": "1600003600000",
          "endTimestampMs": "1600007200000"
        },
        "startLocation": {"latitudeE7": 375000000, "longitudeE7": -1224000000},
        "endLocation": {"latitudeE7": 376000000, "longitudeE7": -1225000000},
        "distance": 12000,
        "activityType": "IN_BUS",
        "confidence": "MEDIUM",
        "waypointPath": {
          "waypoints": [
            {"latE7": 375500000, "lngE7": -1224500000}
          ]
        }
      }
    },
    {
      "activitySegment": {
        "duration": {
          "startTimestampMs": "1600007200000",
          "endTimestampMs": "1600010800000"
        },
        "endLocation": {"latitudeE7": 376000000, "longitudeE7": -1225000000}
      }
    }
  ]
}`

func writeArchive(t *testing.T, name string, members map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for member, content := range members {
		w, err := zw.Create(member)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestLoad_TagsAndNormalizes(t *testing.T) {
	path := writeArchive(t, "alice.zip", map[string]string{
		"Takeout/Location History/Semantic Location History/2020/2020_SEPTEMBER.json": timelineJSON,
		"Takeout/Location History/Records.json":                                       `{"locations": []}`,
		"Takeout/archive_browser.html":                                                "<html></html>",
	})

	loader := NewLoader(normalize.New(false))
	points, err := loader.Load(path, "alice")
	require.NoError(t, err)

	// 2 visit points + 2 segment points; the segment without a start
	// location is dropped, the non-semantic members are skipped
	require.Len(t, points, 4)
	for _, p := range points {
		assert.Equal(t, "alice", p.UserID)
	}
	assert.Equal(t, "Home", points[0].Label)
	assert.Equal(t, "IN_BUS", points[2].Label)
}

func TestLoad_WaypointsExpanded(t *testing.T) {
	path := writeArchive(t, "alice.zip", map[string]string{
		"Semantic Location History/2020/2020_SEPTEMBER.json": timelineJSON,
	})

	loader := NewLoader(normalize.New(true))
	points, err := loader.Load(path, "alice")
	require.NoError(t, err)

	// Visit (2) + segment with one waypoint (3)
	assert.Len(t, points, 5)
}

func TestLoad_LogsDroppedRecordCount(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	path := writeArchive(t, "alice.zip", map[string]string{
		"Semantic Location History/2020/2020_SEPTEMBER.json": timelineJSON,
	})

	loader := NewLoader(normalize.New(false))
	_, err := loader.Load(path, "alice")
	require.NoError(t, err)

	// The segment without a start location is the one dropped record
	assert.Contains(t, buf.String(), "1 records dropped")
}

func TestLoad_MissingPlaceIDFailsLoad(t *testing.T) {
	bad := `{"timelineObjects": [{"placeVisit": {
		"location": {"latitudeE7": 1, "longitudeE7": 1},
		"duration": {"startTimestampMs": "1", "endTimestampMs": "2"},
		"visitConfidence": 1
	}}]}`
	path := writeArchive(t, "bob.zip", map[string]string{
		"Semantic Location History/2020/2020_MAY.json": bad,
	})

	loader := NewLoader(normalize.New(false))
	_, err := loader.Load(path, "bob")
	require.Error(t, err)
	assert.ErrorIs(t, err, normalize.ErrMissingPlaceID)
}

func TestLoad_BadArchivePath(t *testing.T) {
	loader := NewLoader(normalize.New(false))
	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.zip"), "x")
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeArchive(t, "bob.zip", map[string]string{
		"Semantic Location History/2020/2020_MAY.json": "{not json",
	})

	loader := NewLoader(normalize.New(false))
	_, err := loader.Load(path, "bob")
	assert.Error(t, err)
}

func TestUserID(t *testing.T) {
	assert.Equal(t, "alice", UserID("/data/exports/alice.zip"))
	assert.Equal(t, "takeout-2020", UserID("takeout-2020.zip"))
	assert.Equal(t, "plain", UserID("plain"))
}
