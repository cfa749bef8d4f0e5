package archive

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/jengzang/overlap-backend-go/internal/models"
	"github.com/jengzang/overlap-backend-go/internal/normalize"
)

// Loader walks a location-history export archive, decodes every semantic
// timeline document inside it and feeds the records to the normalizer.
type Loader struct {
	norm *normalize.Normalizer
}

// NewLoader creates a loader backed by the given normalizer.
func NewLoader(n *normalize.Normalizer) *Loader {
	return &Loader{norm: n}
}

// Load reads the zip archive at path and returns every normalized point,
// tagged with userID. Records the normalizer drops are counted but not an
// error; a missing required identifier fails the whole load.
func (l *Loader) Load(path, userID string) ([]models.Point, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer zr.Close()

	var points []models.Point
	files, dropped := 0, 0
	for _, f := range zr.File {
		if !isSemanticTimeline(f.Name) {
			continue
		}
		files++
		filePoints, fileDropped, err := l.loadFile(f, userID)
		if err != nil {
			return nil, err
		}
		dropped += fileDropped
		points = append(points, filePoints...)
	}
	log.Printf("[Loader] %s: %d timeline files, %d points, %d records dropped (user=%s)",
		filepath.Base(path), files, len(points), dropped, userID)
	return points, nil
}

func (l *Loader) loadFile(f *zip.File, userID string) ([]models.Point, int, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	var points []models.Point
	dropped := 0

	var doc models.TimelineFile
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", f.Name, err)
	}

	for _, obj := range doc.TimelineObjects {
		objPoints, err := l.norm.TimelineObject(obj)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", f.Name, err)
		}
		if len(objPoints) == 0 {
			dropped++
			continue
		}
		for i := range objPoints {
			objPoints[i].UserID = userID
		}
		points = append(points, objPoints...)
	}
	return points, dropped, nil
}

// isSemanticTimeline matches the takeout naming convention for semantic
// location history documents, e.g.
// "Takeout/Location History/Semantic Location History/2021/2021_MARCH.json".
func isSemanticTimeline(name string) bool {
	return strings.Contains(name, "Semantic") && strings.HasSuffix(name, ".json")
}

// UserID derives the opaque per-user key from an archive path: the filename
// without its extension.
func UserID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
