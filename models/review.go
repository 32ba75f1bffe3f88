package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ReviewStatus values are stored as lowercase string tokens.
type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "pending"
	ReviewDraft     ReviewStatus = "draft"
	ReviewSubmitted ReviewStatus = "submitted"
)

// ScoreMap holds per-criterion sub-scores keyed by criterion name, stored as
// a JSON column.
type ScoreMap map[string]float64

func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *ScoreMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported score map column type %T", value)
	}
}

// Review is one expert's scoring record for an application. At most one row
// may exist per (application, expert) pair; the composite unique index backs
// the idempotent assign operation.
type Review struct {
	ID            int          `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID int          `gorm:"column:application_id;not null;uniqueIndex:idx_reviews_app_expert" json:"application_id"`
	ExpertID      int          `gorm:"column:expert_id;not null;uniqueIndex:idx_reviews_app_expert" json:"expert_id"`
	Scores        ScoreMap     `gorm:"column:scores_json;type:json" json:"scores,omitempty"`
	TotalScore    *float64     `gorm:"column:total_score" json:"total_score,omitempty"`
	Comment       *string      `gorm:"column:comment;type:text" json:"comment,omitempty"`
	IsAnonymous   bool         `gorm:"column:is_anonymous;default:true" json:"is_anonymous"`
	Status        ReviewStatus `gorm:"column:status;size:20;default:pending" json:"status"`
	SubmittedAt   *time.Time   `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreatedAt     time.Time    `gorm:"column:created_at" json:"created_at"`

	// Relations
	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Expert      *User        `gorm:"foreignKey:ExpertID" json:"expert,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
