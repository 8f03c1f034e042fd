package embedding

import "context"

// CallRecorder counts provider calls by outcome.
type CallRecorder interface {
	RecordEmbeddingCall(outcome string)
}

type instrumented struct {
	next Scorer
	rec  CallRecorder
}

// Instrumented wraps a scorer with call counting. The no-op scorer should
// not be wrapped; absence of the feature is not an outcome worth counting.
func Instrumented(next Scorer, rec CallRecorder) Scorer {
	return instrumented{next: next, rec: rec}
}

func (i instrumented) Similarity(ctx context.Context, textA, textB string) (float64, bool) {
	score, ok := i.next.Similarity(ctx, textA, textB)
	if ok {
		i.rec.RecordEmbeddingCall("ok")
	} else {
		i.rec.RecordEmbeddingCall("error")
	}
	return score, ok
}
