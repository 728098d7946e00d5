package verify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embedding returns a unit vector of EmbeddingDim with the given leading values.
func embedding(lead ...float64) []float64 {
	v := make([]float64, EmbeddingDim)
	copy(v, lead)
	return v
}

func TestFaceScore(t *testing.T) {
	t.Run("identical vectors, cosine 1.0", func(t *testing.T) {
		ref := embedding(1)
		score, err := FaceScore(embedding(1), ref, MetricCosine)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("identical vectors, euclidean 0.0", func(t *testing.T) {
		ref := embedding(0.5, 0.5)
		score, err := FaceScore(embedding(0.5, 0.5), ref, MetricEuclidean)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, score, 1e-9)
	})

	t.Run("known cosine value", func(t *testing.T) {
		// cos(angle between [1,0,...] and [0.4, sqrt(0.84), 0...]) = 0.4
		captured := embedding(0.4, math.Sqrt(1-0.16))
		score, err := FaceScore(captured, embedding(1), MetricCosine)
		require.NoError(t, err)
		assert.InDelta(t, 0.4, score, 1e-9)
	})

	t.Run("wrong captured dimensionality", func(t *testing.T) {
		_, err := FaceScore([]float64{1, 2, 3}, embedding(1), MetricCosine)
		var bad *InvalidEmbeddingError
		assert.ErrorAs(t, err, &bad)
	})

	t.Run("wrong reference dimensionality", func(t *testing.T) {
		_, err := FaceScore(embedding(1), []float64{1, 2, 3}, MetricCosine)
		var bad *InvalidEmbeddingError
		assert.ErrorAs(t, err, &bad)
	})

	t.Run("zero norm reference", func(t *testing.T) {
		_, err := FaceScore(embedding(1), make([]float64, EmbeddingDim), MetricCosine)
		var bad *InvalidEmbeddingError
		assert.ErrorAs(t, err, &bad)
	})
}

func TestIsMatch(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		metric   Metric
		expected bool
	}{
		{"cosine at floor", 0.55, MetricCosine, true},
		{"cosine above floor", 0.80, MetricCosine, true},
		{"cosine below floor", 0.5499, MetricCosine, false},
		{"cosine far below floor", 0.40, MetricCosine, false},
		{"euclidean at ceiling", 0.60, MetricEuclidean, true},
		{"euclidean below ceiling", 0.30, MetricEuclidean, true},
		{"euclidean above ceiling", 0.6001, MetricEuclidean, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsMatch(tc.score, tc.metric))
		})
	}
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("cosine")
	require.NoError(t, err)
	assert.Equal(t, MetricCosine, m)

	m, err = ParseMetric("euclidean")
	require.NoError(t, err)
	assert.Equal(t, MetricEuclidean, m)

	_, err = ParseMetric("manhattan")
	assert.Error(t, err)
}
