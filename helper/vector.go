package helper

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// ErrBadVector is returned for embeddings that cannot be compared:
// mismatched lengths, empty input, or a zero-norm vector.
var ErrBadVector = errors.New("invalid embedding vector")

// CosineSimilarity returns dot(a,b) / (|a| * |b|), clamped to [-1, 1].
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, ErrBadVector
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, ErrBadVector
	}

	sim := floats.Dot(a, b) / (normA * normB)

	// Clamp floating point drift.
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return sim, nil
}

// EuclideanDistance returns the L2 distance between a and b.
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, ErrBadVector
	}
	return floats.Distance(a, b, 2), nil
}
