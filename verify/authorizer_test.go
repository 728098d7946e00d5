package verify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TIMEGATE/models"
)

var hq = models.Location{ID: 7, Name: "HQ", Latitude: 13.75, Longitude: 100.50, RadiusM: 100}

func candidateAt(lat, lng float64, emb []float64) PunchCandidate {
	return PunchCandidate{
		UserID:    42,
		Lat:       lat,
		Lng:       lng,
		Embedding: emb,
		PunchType: models.PunchInAM,
	}
}

func TestAuthorize(t *testing.T) {
	reference := embedding(1)

	t.Run("full admission", func(t *testing.T) {
		auth, err := Authorize(candidateAt(13.7505, 100.5005, embedding(1)), reference, []models.Location{hq}, MetricCosine)
		require.NoError(t, err)

		assert.Equal(t, uint(42), auth.UserID)
		assert.Equal(t, uint(7), auth.LocationID)
		assert.Equal(t, models.PunchInAM, auth.PunchType)
		assert.InDelta(t, 77.5, auth.DistanceM, 1.0)
		assert.InDelta(t, 1.0, auth.FaceScore, 1e-9)
		assert.Equal(t, MetricCosine, auth.Metric)
	})

	t.Run("out of range rejects before any face work", func(t *testing.T) {
		// The captured embedding is deliberately malformed: if the face step
		// ran, this would surface as InvalidEmbeddingError instead.
		auth, err := Authorize(candidateAt(13.795, 100.50, []float64{1, 2, 3}), reference, []models.Location{hq}, MetricCosine)
		require.Nil(t, auth)

		var oor *OutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.InDelta(t, 5003.8, oor.DistanceM, 5.0)
	})

	t.Run("no candidate locations", func(t *testing.T) {
		_, err := Authorize(candidateAt(13.75, 100.50, embedding(1)), reference, nil, MetricCosine)
		assert.ErrorIs(t, err, ErrLocationNotFound)
	})

	t.Run("no face enrolled, regardless of location success", func(t *testing.T) {
		_, err := Authorize(candidateAt(13.7505, 100.5005, embedding(1)), nil, []models.Location{hq}, MetricCosine)
		assert.ErrorIs(t, err, ErrNoFaceEnrolled)
	})

	t.Run("face mismatch carries score", func(t *testing.T) {
		// cosine against reference is exactly 0.40, below the 0.55 floor
		captured := embedding(0.4, math.Sqrt(1-0.16))
		auth, err := Authorize(candidateAt(13.7505, 100.5005, captured), reference, []models.Location{hq}, MetricCosine)
		require.Nil(t, auth)

		var mismatch *FaceMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.InDelta(t, 0.40, mismatch.Score, 1e-9)
		assert.Equal(t, MetricCosine, mismatch.Metric)
	})

	t.Run("malformed captured embedding", func(t *testing.T) {
		_, err := Authorize(candidateAt(13.7505, 100.5005, []float64{1, 2}), reference, []models.Location{hq}, MetricCosine)
		var bad *InvalidEmbeddingError
		assert.ErrorAs(t, err, &bad)
	})

	t.Run("euclidean metric admits close embeddings", func(t *testing.T) {
		captured := embedding(1)
		captured[1] = 0.3 // L2 distance 0.3, under the 0.60 ceiling

		auth, err := Authorize(candidateAt(13.7505, 100.5005, captured), reference, []models.Location{hq}, MetricEuclidean)
		require.NoError(t, err)
		assert.InDelta(t, 0.3, auth.FaceScore, 1e-9)
		assert.Equal(t, MetricEuclidean, auth.Metric)
	})
}
