package embedding

import "context"

// Scorer is implemented by Client and by the disabled no-op.
type Scorer interface {
	Similarity(ctx context.Context, textA, textB string) (float64, bool)
}

// noopScorer always reports the signal as absent.
type noopScorer struct{}

func (noopScorer) Similarity(ctx context.Context, textA, textB string) (float64, bool) {
	return 0, false
}

// Disabled returns a scorer that never performs network I/O. Handing this to
// the matcher keeps its logic identical whether semantic matching is enabled
// or not.
func Disabled() Scorer {
	return noopScorer{}
}
