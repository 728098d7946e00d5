package verify

import "TIMEGATE/models"

// PunchCandidate is one punch attempt as claimed by the client. It is never
// persisted; only the values carried through an Authorization reach the store.
type PunchCandidate struct {
	UserID    uint
	Lat       float64
	Lng       float64
	Embedding []float64
	PunchType string
}

// Authorization is the tuple carried out of a fully verified attempt. Only an
// Authorization may be recorded.
type Authorization struct {
	UserID     uint
	LocationID uint
	PunchType  string
	Lat        float64
	Lng        float64
	DistanceM  float64
	FaceScore  float64
	Metric     Metric
}

// Authorize runs the punch decision procedure: geofence first, biometric
// second. The cheap location check always precedes the privacy-sensitive
// face comparison, so an out-of-range claim never touches the embedding.
//
// reference is the enrolled embedding from the user's profile (nil when no
// face is enrolled). candidates is the location set to match against: the
// user's assigned location alone, or every registered location when the user
// has no assignment.
//
// Failure returns exactly one of: ErrLocationNotFound, *OutOfRangeError,
// ErrNoFaceEnrolled, *FaceMismatchError, *InvalidEmbeddingError.
func Authorize(candidate PunchCandidate, reference []float64, candidates []models.Location, metric Metric) (*Authorization, error) {
	loc, distance, err := ResolveLocation(candidate.Lat, candidate.Lng, candidates)
	if err != nil {
		return nil, err
	}

	if len(reference) == 0 {
		return nil, ErrNoFaceEnrolled
	}

	score, err := FaceScore(candidate.Embedding, reference, metric)
	if err != nil {
		return nil, err
	}
	if !IsMatch(score, metric) {
		return nil, &FaceMismatchError{Score: score, Metric: metric}
	}

	return &Authorization{
		UserID:     candidate.UserID,
		LocationID: loc.ID,
		PunchType:  candidate.PunchType,
		Lat:        candidate.Lat,
		Lng:        candidate.Lng,
		DistanceM:  distance,
		FaceScore:  score,
		Metric:     metric,
	}, nil
}
