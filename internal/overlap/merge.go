package overlap

import (
	"sort"

	"github.com/jengzang/overlap-backend-go/internal/models"
)

// Merge concatenates the given point lists and sorts the result by original
// timestamp, ascending. The sort is stable, so points sharing a timestamp
// keep their relative input order (consecutive segment points of one user
// often share a boundary timestamp). No deduplication.
func Merge(lists ...[]models.Point) []models.Point {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	merged := make([]models.Point, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].OrigTimestamp < merged[j].OrigTimestamp
	})
	return merged
}
