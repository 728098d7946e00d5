package verify

import (
	"math"
	"sort"

	"TIMEGATE/helper"
	"TIMEGATE/models"
)

// ResolveLocation finds the geofence containing the claimed point. A location
// matches when the haversine distance to its center is within its radius,
// boundary inclusive. Overlapping geofences are resolved deterministically:
// the smallest radius wins, so the tightest fence takes precedence over a
// campus-wide one.
//
// Returns the matched location and the distance to its center. When nothing
// matches, returns *OutOfRangeError carrying the distance to the nearest
// candidate center. An empty candidate set is ErrLocationNotFound.
func ResolveLocation(lat, lng float64, candidates []models.Location) (*models.Location, float64, error) {
	if len(candidates) == 0 {
		return nil, 0, ErrLocationNotFound
	}

	sorted := make([]models.Location, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RadiusM < sorted[j].RadiusM
	})

	nearest := math.MaxFloat64
	for i := range sorted {
		d := helper.Geolocation(lat, lng, sorted[i].Latitude, sorted[i].Longitude)
		if d < nearest {
			nearest = d
		}
		if d <= sorted[i].RadiusM {
			return &sorted[i], d, nil
		}
	}

	return nil, 0, &OutOfRangeError{DistanceM: nearest}
}
