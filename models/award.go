package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AwardLevel values are stored as lowercase string tokens.
type AwardLevel string

const (
	LevelNational   AwardLevel = "national"
	LevelIndustry   AwardLevel = "industry"
	LevelProvincial AwardLevel = "provincial"
)

// ValidAwardLevel reports whether s is a known award level token.
func ValidAwardLevel(s string) bool {
	switch AwardLevel(s) {
	case LevelNational, LevelIndustry, LevelProvincial:
		return true
	}
	return false
}

type Award struct {
	ID               int        `gorm:"primaryKey;column:id" json:"id"`
	Name             string     `gorm:"column:name;size:100" json:"name"`
	Code             string     `gorm:"column:code;uniqueIndex;size:50" json:"code"`
	Level            AwardLevel `gorm:"column:level;size:20;default:industry" json:"level"`
	Year             int        `gorm:"column:year" json:"year"`
	Description      *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	ApplicationStart *time.Time `gorm:"column:application_start" json:"application_start,omitempty"`
	ApplicationEnd   *time.Time `gorm:"column:application_end" json:"application_end,omitempty"`
	Status           string     `gorm:"column:status;size:20;default:active" json:"status"`
	CreatedBy        *int       `gorm:"column:created_by" json:"created_by,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	// Relations
	Cycles []AwardCycle `gorm:"foreignKey:AwardID" json:"cycles,omitempty"`
}

func (Award) TableName() string {
	return "awards"
}

// ScoringRule is one criterion of a cycle's scoring configuration.
// Weights are expected to sum to 1.0 and max scores to 100 by convention;
// neither is enforced at write time.
type ScoringRule struct {
	Criterion string  `json:"criterion"`
	Weight    float64 `json:"weight"`
	MaxScore  float64 `json:"max_score"`
}

// ScoringRules is the ordered rule list stored as a JSON column.
type ScoringRules []ScoringRule

func (r ScoringRules) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *ScoringRules) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported scoring rules column type %T", value)
	}
}

// AwardCycle is one time-boxed round of applications under a parent award.
type AwardCycle struct {
	ID        int          `gorm:"primaryKey;column:id" json:"id"`
	AwardID   int          `gorm:"column:award_id;not null" json:"award_id"`
	CycleName string       `gorm:"column:cycle_name;size:100" json:"cycle_name"`
	StartDate time.Time    `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time    `gorm:"column:end_date" json:"end_date"`
	Rules     ScoringRules `gorm:"column:rules_json;type:json" json:"rules,omitempty"`
	Quota     *int         `gorm:"column:quota" json:"quota,omitempty"`
	Budget    *float64     `gorm:"column:budget" json:"budget,omitempty"`
	Status    string       `gorm:"column:status;size:20;default:active" json:"status"`
	CreatedAt time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time   `gorm:"column:updated_at" json:"updated_at,omitempty"`

	// Relations
	Award *Award `gorm:"foreignKey:AwardID" json:"award,omitempty"`
}

func (AwardCycle) TableName() string {
	return "award_cycles"
}

var errEmptyCycleWindow = errors.New("cycle end date before start date")

// ValidateWindow checks the cycle date window is ordered.
func (c *AwardCycle) ValidateWindow() error {
	if c.EndDate.Before(c.StartDate) {
		return errEmptyCycleWindow
	}
	return nil
}
