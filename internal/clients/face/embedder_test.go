package face

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	if got := CosineSimilarity([]float64{1, 0}, []float64{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical vectors: got %v", got)
	}
	if got := CosineSimilarity([]float64{1, 0}, []float64{0, 1}); math.Abs(got) > 1e-9 {
		t.Fatalf("orthogonal vectors: got %v", got)
	}
	if got := CosineSimilarity([]float64{1, 0}, []float64{-1, 0}); math.Abs(got+1) > 1e-9 {
		t.Fatalf("opposite vectors: got %v", got)
	}
}

func TestCosineSimilarityDegenerate(t *testing.T) {
	if got := CosineSimilarity(nil, []float64{1}); got != 0 {
		t.Fatalf("mismatched lengths: got %v", got)
	}
	if got := CosineSimilarity([]float64{0, 0}, []float64{0, 0}); got != 0 {
		t.Fatalf("zero vectors: got %v", got)
	}
}
