package matching

import (
	"strings"

	"github.com/golang/geo/s2"

	"campustrace/models"
)

const (
	earthRadiusMeters = 6371000

	// A candidate further than this never matches, no matter how similar.
	MaxDistanceMeters = 200

	maxDateGapDays = 10

	categoryWeight    = 0.35
	distanceWeight    = 0.20
	dateWeight        = 0.10
	titleWeight       = 0.20
	descriptionWeight = 0.15
)

// DistanceMeters returns the great-circle distance between two coordinates
// on a spherical Earth. Inputs are assumed validated upstream.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lng1)
	b := s2.LatLngFromDegrees(lat2, lng2)
	return a.Distance(b).Radians() * earthRadiusMeters
}

// TitleSimilarity is token-set overlap: |A ∩ B| / max(|A|, |B|) over
// lower-cased whitespace-separated words. Duplicate words collapse.
func TitleSimilarity(a, b string) float64 {
	wordsA := tokenSet(a)
	wordsB := tokenSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for word := range wordsA {
		if _, ok := wordsB[word]; ok {
			intersection++
		}
	}

	largest := len(wordsA)
	if len(wordsB) > largest {
		largest = len(wordsB)
	}
	return float64(intersection) / float64(largest)
}

// DescriptionSimilarity applies TitleSimilarity when both descriptions are
// present. A missing description contributes nothing rather than failing.
func DescriptionSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return TitleSimilarity(a, b)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(s)) {
		set[word] = struct{}{}
	}
	return set
}

// ScoreResult is the base weighted score plus the raw distance, which the
// orchestrator needs for its hard proximity gate.
type ScoreResult struct {
	Score          float64
	DistanceMeters float64
}

// ComputeMatchScore combines category equality, geographic proximity, date
// proximity and lexical title/description overlap into one weighted score.
// The weights sum to 1, so the result stays in [0,1]; it is clamped anyway.
func ComputeMatchScore(a, b models.Item) ScoreResult {
	categoryScore := 0.0
	if a.Category == b.Category {
		categoryScore = 1.0
	}

	distance := DistanceMeters(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	distanceScore := 1 - distance/MaxDistanceMeters
	if distanceScore < 0 {
		distanceScore = 0
	}

	gapDays := a.DateOccurred.Sub(b.DateOccurred).Hours() / 24
	if gapDays < 0 {
		gapDays = -gapDays
	}
	dateScore := 1 - gapDays/maxDateGapDays
	if dateScore < 0 {
		dateScore = 0
	}

	titleScore := TitleSimilarity(a.Title, b.Title)
	descriptionScore := DescriptionSimilarity(a.Description, b.Description)

	score := categoryScore*categoryWeight +
		distanceScore*distanceWeight +
		dateScore*dateWeight +
		titleScore*titleWeight +
		descriptionScore*descriptionWeight

	return ScoreResult{Score: clamp01(score), DistanceMeters: distance}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
