package biography

import (
	"fmt"
	"math"
	"sort"

	"github.com/xaenox/biograph/internal/models"
)

const (
	// Gaps longer than this always score as a boundary signal.
	significantGapDays = 90

	// Candidates below this combined strength are discarded.
	minBoundaryStrength = 0.4

	// Minimum index distance between kept candidates, checked in
	// strength-sorted order. See the note on filterBoundaries.
	minBoundarySpacing = 5
)

// DetectBoundaries scores every adjacent-event transition in a chronologically
// sorted timeline and returns the surviving cut points, ascending by index.
// Pure computation, no I/O.
func DetectBoundaries(events []*models.TimelineEvent, minChapterDurationDays, maxChapterDurationDays int) []models.ChapterBoundary {
	var boundaries []models.ChapterBoundary

	for i := 1; i < len(events); i++ {
		prev := events[i-1]
		current := events[i]
		daysDiff := current.Timestamp.Sub(prev.Timestamp).Hours() / 24

		strength := 0.0
		reason := ""

		// Signal 1: significant time gap
		if daysDiff > significantGapDays {
			strength = math.Min(daysDiff/365, 1.0)
			reason = fmt.Sprintf("Significant time gap: %d days", int(daysDiff))
		}

		// Signal 2: major category shift
		if prev.Category != "" && current.Category != "" && prev.Category != current.Category {
			if prev.Category.IsMajor() || current.Category.IsMajor() {
				strength = math.Max(strength, 0.7)
				if reason == "" {
					reason = fmt.Sprintf("Major category change: %s -> %s", prev.Category, current.Category)
				}
			}
		}

		// Signal 3: calendar year boundary
		prevYear := prev.Timestamp.Year()
		currentYear := current.Timestamp.Year()
		if prevYear != currentYear {
			strength = math.Max(strength, 0.5)
			if reason == "" {
				reason = fmt.Sprintf("Year boundary: %d -> %d", prevYear, currentYear)
			}
		}

		// Signal 4: natural cluster gap
		if daysDiff > float64(minChapterDurationDays) && daysDiff < float64(maxChapterDurationDays) {
			strength = math.Max(strength, 0.4)
			if reason == "" {
				reason = "Natural cluster boundary"
			}
		}

		if strength >= minBoundaryStrength {
			boundaries = append(boundaries, models.ChapterBoundary{
				Index:     i,
				Timestamp: current.Timestamp,
				Reason:    reason,
				Strength:  strength,
			})
		}
	}

	kept := filterBoundaries(boundaries)

	sort.Slice(kept, func(a, b int) bool {
		return kept[a].Index < kept[b].Index
	})
	return kept
}

// filterBoundaries enforces minimum spacing between cut points. The spacing
// check runs over the candidates sorted by descending strength, comparing each
// one against the previously kept candidate in that order, not in
// chronological order. Product behavior; keep as is.
func filterBoundaries(boundaries []models.ChapterBoundary) []models.ChapterBoundary {
	if len(boundaries) == 0 {
		return nil
	}

	sorted := make([]models.ChapterBoundary, len(boundaries))
	copy(sorted, boundaries)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Strength > sorted[b].Strength
	})

	kept := make([]models.ChapterBoundary, 0, len(sorted))
	kept = append(kept, sorted[0])
	last := sorted[0]
	for _, b := range sorted[1:] {
		distance := b.Index - last.Index
		if distance < 0 {
			distance = -distance
		}
		if distance >= minBoundarySpacing {
			kept = append(kept, b)
			last = b
		}
	}
	return kept
}
