package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Punch type codes, one per daily clock event.
const (
	PunchInAM     = "IN_AM"
	PunchOutLunch = "OUT_LUNCH"
	PunchInPM     = "IN_PM"
	PunchOutPM    = "OUT_PM"
)

// ValidPunchType reports whether t is one of the closed punch type set.
func ValidPunchType(t string) bool {
	switch t {
	case PunchInAM, PunchOutLunch, PunchInPM, PunchOutPM:
		return true
	}
	return false
}

// Punch is one immutable attendance event. Rows are only ever inserted;
// CreatedAt is assigned by the server at persistence time, never taken from
// the client.
type Punch struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	LocationID uint      `gorm:"index;not null" json:"location_id"`
	PunchType  string    `gorm:"size:16;not null" json:"punch_type"`
	Lat        float64   `gorm:"not null" json:"lat"`
	Lng        float64   `gorm:"not null" json:"lng"`
	DistanceM  float64   `gorm:"not null" json:"distance_m"`
	FaceScore  float64   `gorm:"not null" json:"face_score"`
	FaceMetric string    `gorm:"size:16;not null" json:"face_metric"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Punch) TableName() string {
	return "time_punches"
}

// BeforeCreate assigns the event ID.
func (p *Punch) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
