package matching

import (
	"math"
	"testing"
)

func TestHashSimilarity(t *testing.T) {
	testCases := []struct {
		name   string
		a      string
		b      string
		want   float64
		wantOK bool
	}{
		{name: "identical", a: "abcd", b: "abcd", want: 1, wantOK: true},
		{name: "one of four differs", a: "abcd", b: "abcf", want: 0.75, wantOK: true},
		{name: "all differ", a: "aaaa", b: "bbbb", want: 0, wantOK: true},
		{name: "left missing", a: "", b: "abcf", wantOK: false},
		{name: "right missing", a: "abcd", b: "", wantOK: false},
		{name: "length mismatch", a: "abc", b: "abcf", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := HashSimilarity(tc.a, tc.b)
			if ok != tc.wantOK {
				t.Fatalf("HashSimilarity(%q, %q) ok = %v, want %v", tc.a, tc.b, ok, tc.wantOK)
			}
			if ok && math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("HashSimilarity(%q, %q) = %f, want %f", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestHashSimilarityAbsenceIsNotZero(t *testing.T) {
	// A pair of maximally different hashes scores 0 with ok=true; a missing
	// hash reports ok=false. Callers must be able to tell these apart.
	score, ok := HashSimilarity("aaaa", "bbbb")
	if !ok || score != 0 {
		t.Fatalf("expected (0, true) for fully different hashes, got (%f, %v)", score, ok)
	}
	if _, ok := HashSimilarity("", "bbbb"); ok {
		t.Fatal("expected ok=false for a missing hash")
	}
}
