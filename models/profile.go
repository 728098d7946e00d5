package models

import (
	"encoding/json"
	"time"
)

// UserProfile carries the enrolled face embedding and the assigned work
// location for one user. Embedding holds the raw JSON column from the DB;
// Vector is the decoded form used by the matching code.
type UserProfile struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName   string          `gorm:"size:255" json:"full_name"`
	Embedding  json.RawMessage `gorm:"type:json" json:"-"`
	Vector     []float64       `gorm:"-" json:"embedding,omitempty"`
	LocationID *uint           `gorm:"index" json:"location_id"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// DecodeEmbedding fills Vector from the raw JSON column. An empty column is
// not an error: it simply means no face has been enrolled yet.
func (p *UserProfile) DecodeEmbedding() error {
	if len(p.Embedding) == 0 {
		p.Vector = nil
		return nil
	}
	return json.Unmarshal(p.Embedding, &p.Vector)
}

// EncodeEmbedding stores vec into the raw JSON column.
func (p *UserProfile) EncodeEmbedding(vec []float64) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	p.Embedding = raw
	p.Vector = vec
	return nil
}
