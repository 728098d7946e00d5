package recorder

import (
	"context"

	"gorm.io/gorm"

	"TIMEGATE/models"
	"TIMEGATE/verify"
)

// DefaultHistoryLimit caps how many punches a history query returns.
const DefaultHistoryLimit = 50

// Recorder persists authorized punches and serves punch history. Punch rows
// are append-only: this type only ever inserts and selects.
type Recorder struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record inserts exactly one punch row for an authorized attempt. The row
// timestamp comes from the server clock at insert time (gorm autoCreateTime);
// whatever the client claims about time is ignored. Failures are wrapped as
// *verify.PersistenceError and must not be retried by the caller, since a
// duplicate retry would double-record the punch.
func (r *Recorder) Record(ctx context.Context, auth *verify.Authorization) (*models.Punch, error) {
	punch := models.Punch{
		UserID:     auth.UserID,
		LocationID: auth.LocationID,
		PunchType:  auth.PunchType,
		Lat:        auth.Lat,
		Lng:        auth.Lng,
		DistanceM:  auth.DistanceM,
		FaceScore:  auth.FaceScore,
		FaceMetric: string(auth.Metric),
	}

	if err := r.db.WithContext(ctx).Create(&punch).Error; err != nil {
		return nil, &verify.PersistenceError{Err: err}
	}
	return &punch, nil
}

// History returns the user's punches ordered most-recent-first.
func (r *Recorder) History(ctx context.Context, userID uint, limit int) ([]models.Punch, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}

	var punches []models.Punch
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&punches).Error
	if err != nil {
		return nil, &verify.PersistenceError{Err: err}
	}
	return punches, nil
}

// CountForDay returns how many punches were recorded for the given date,
// grouped per location. Used by the nightly digest job.
func (r *Recorder) CountForDay(ctx context.Context, day string) (map[uint]int64, error) {
	type row struct {
		LocationID uint
		N          int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Punch{}).
		Select("location_id, COUNT(*) AS n").
		Where("DATE(created_at) = ?", day).
		Group("location_id").
		Scan(&rows).Error
	if err != nil {
		return nil, &verify.PersistenceError{Err: err}
	}

	counts := make(map[uint]int64, len(rows))
	for _, rw := range rows {
		counts[rw.LocationID] = rw.N
	}
	return counts, nil
}
