package matching

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"campustrace/models"
)

const (
	// CandidateLimit caps how many open opposite-kind items one posting is
	// scored against.
	CandidateLimit = 80

	// Semantic scoring is only attempted once the base score already shows
	// promise; below this floor the provider is never called.
	semanticScoreFloor = 0.35

	imageBonusWeight = 0.15
	textBonusWeight  = 0.20

	// MatchThreshold is the combined-score floor for persisting a match.
	MatchThreshold = 0.55
)

// ItemStore is the persistence surface the matcher needs. UpsertMatch must
// enforce (lostItemID, foundItemID) uniqueness atomically at the storage
// layer; the matcher never does read-then-write.
type ItemStore interface {
	FindOpenItemsByKind(ctx context.Context, kind models.ItemKind, limit int) ([]models.Item, error)
	UpsertMatch(ctx context.Context, lostItemID, foundItemID string, score float64) (models.Match, error)
}

// NotificationSink receives match alerts. Delivery is the sink's concern.
type NotificationSink interface {
	Notify(ctx context.Context, userID, title, body string) error
}

// SemanticScorer scores two texts for semantic similarity. ok=false means
// the signal is unavailable (disabled, unconfigured, or the provider
// failed); it is never an error.
type SemanticScorer interface {
	Similarity(ctx context.Context, textA, textB string) (score float64, ok bool)
}

// Recorder is an optional hook for operational counters.
type Recorder interface {
	RecordMatchUpserted()
	RecordNotification()
}

// Matcher scores a newly posted item against open opposite-kind items and
// persists the pairs that clear the gate.
type Matcher struct {
	store    ItemStore
	notifier NotificationSink
	semantic SemanticScorer
	rec      Recorder
}

func NewMatcher(store ItemStore, notifier NotificationSink, semantic SemanticScorer, rec Recorder) *Matcher {
	return &Matcher{store: store, notifier: notifier, semantic: semantic, rec: rec}
}

// Run evaluates the subject against up to CandidateLimit open candidates and
// returns how many matches were created or re-scored. A failure persisting
// one candidate's match does not stop the rest; an error is returned only
// when the candidate fetch fails or every qualifying candidate failed.
func (m *Matcher) Run(ctx context.Context, subject models.Item) (int, error) {
	candidates, err := m.store.FindOpenItemsByKind(ctx, subject.Kind.Opposite(), CandidateLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch match candidates: %w", err)
	}

	created := 0
	qualified := 0
	for _, candidate := range candidates {
		base := ComputeMatchScore(subject, candidate)

		// Absent image signal folds to zero here, as a bonus that simply
		// does not apply. It never disqualifies.
		imageScore, _ := HashSimilarity(subject.ImageHash, candidate.ImageHash)

		textScore := 0.0
		if base.Score >= semanticScoreFloor {
			if s, ok := m.semantic.Similarity(ctx, itemText(subject), itemText(candidate)); ok {
				textScore = s
			}
		}

		combined := base.Score + imageScore*imageBonusWeight + textScore*textBonusWeight
		if combined > 1 {
			combined = 1
		}

		// Both gates must pass. The weighted score already has a distance
		// term, but a strong lexical coincidence must not override a failed
		// proximity check.
		if combined < MatchThreshold || base.DistanceMeters > MaxDistanceMeters {
			continue
		}

		qualified++
		if err := m.recordMatch(ctx, subject, candidate, combined); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"subject":   subject.ID,
				"candidate": candidate.ID,
			}).Error("failed to persist match")
			continue
		}
		created++
	}

	if qualified > 0 && created == 0 {
		return 0, fmt.Errorf("all %d qualifying matches failed to persist", qualified)
	}
	return created, nil
}

func (m *Matcher) recordMatch(ctx context.Context, subject, candidate models.Item, score float64) error {
	// The pair is always stored as (lost, found), whichever side triggered
	// the evaluation.
	lostItem, foundItem := subject, candidate
	if subject.Kind == models.KindFound {
		lostItem, foundItem = candidate, subject
	}

	if _, err := m.store.UpsertMatch(ctx, lostItem.ID, foundItem.ID, score); err != nil {
		return err
	}
	if m.rec != nil {
		m.rec.RecordMatchUpserted()
	}

	m.notifyOwner(ctx, subject.UserID, subject.Title)
	m.notifyOwner(ctx, candidate.UserID, candidate.Title)
	return nil
}

func (m *Matcher) notifyOwner(ctx context.Context, userID, itemTitle string) {
	err := m.notifier.Notify(ctx, userID, "Potential Match Found",
		fmt.Sprintf("We found a potential match for %s", itemTitle))
	if err != nil {
		log.WithError(err).WithField("user", userID).Warn("failed to send match notification")
		return
	}
	if m.rec != nil {
		m.rec.RecordNotification()
	}
}

func itemText(item models.Item) string {
	return item.Title + ". " + item.Description
}
