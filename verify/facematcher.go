package verify

import (
	"errors"
	"fmt"

	"TIMEGATE/helper"
)

// Metric selects how two embeddings are compared.
type Metric string

const (
	MetricCosine    Metric = "cosine"
	MetricEuclidean Metric = "euclidean"
)

// Fixed decision thresholds. These must not drift: stored face_score values
// are only interpretable against the threshold of their recorded metric.
const (
	// CosineMatchFloor: cosine similarity at or above this is a match.
	CosineMatchFloor = 0.55
	// EuclideanMatchCeiling: L2 distance at or below this is a match.
	EuclideanMatchCeiling = 0.60
)

// EmbeddingDim is the descriptor length produced by the face subsystem.
const EmbeddingDim = 128

// ParseMetric validates a metric name from configuration.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCosine, MetricEuclidean:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown face metric %q", s)
}

// FaceScore compares a captured embedding against the enrolled reference.
// Both vectors must be EmbeddingDim long; anything else is an
// *InvalidEmbeddingError.
func FaceScore(captured, reference []float64, metric Metric) (float64, error) {
	if len(captured) != EmbeddingDim {
		return 0, &InvalidEmbeddingError{Reason: fmt.Sprintf("captured vector has %d dims, want %d", len(captured), EmbeddingDim)}
	}
	if len(reference) != EmbeddingDim {
		return 0, &InvalidEmbeddingError{Reason: fmt.Sprintf("reference vector has %d dims, want %d", len(reference), EmbeddingDim)}
	}

	var (
		score float64
		err   error
	)
	switch metric {
	case MetricEuclidean:
		score, err = helper.EuclideanDistance(captured, reference)
	default:
		score, err = helper.CosineSimilarity(captured, reference)
	}
	if err != nil {
		if errors.Is(err, helper.ErrBadVector) {
			return 0, &InvalidEmbeddingError{Reason: err.Error()}
		}
		return 0, err
	}
	return score, nil
}

// IsMatch applies the fixed threshold for the given metric. Higher is better
// for cosine, lower is better for Euclidean.
func IsMatch(score float64, metric Metric) bool {
	if metric == MetricEuclidean {
		return score <= EuclideanMatchCeiling
	}
	return score >= CosineMatchFloor
}
