package verify

import (
	"errors"
	"fmt"
)

// Rejection reasons for a punch attempt. All of them are business-rule
// outcomes the caller is expected to surface to the user with the attached
// distance/score, never a bare denial.
var (
	// ErrLocationNotFound: the user has no assigned location and no
	// geofences are registered, so there is nothing to match against.
	ErrLocationNotFound = errors.New("no candidate location for user")

	// ErrNoFaceEnrolled: the profile has no reference embedding, so the
	// biometric step cannot run.
	ErrNoFaceEnrolled = errors.New("no face enrolled")
)

// OutOfRangeError rejects a claim outside every candidate geofence.
// DistanceM is the distance to the nearest candidate center, for feedback.
type OutOfRangeError struct {
	DistanceM float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("out of range: %.0f m from nearest location", e.DistanceM)
}

// FaceMismatchError rejects a captured embedding that scored below the
// match threshold.
type FaceMismatchError struct {
	Score  float64
	Metric Metric
}

func (e *FaceMismatchError) Error() string {
	return fmt.Sprintf("face mismatch: %s score %.4f", e.Metric, e.Score)
}

// InvalidEmbeddingError marks a malformed vector: wrong dimensionality,
// empty, or zero norm. This is a precondition violation, not a mismatch.
type InvalidEmbeddingError struct {
	Reason string
}

func (e *InvalidEmbeddingError) Error() string {
	return "invalid embedding: " + e.Reason
}

// PersistenceError wraps a store failure. The caller must surface it without
// retrying: a blind retry could double-record a punch.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence error: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
