package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DecisionType values are stored as lowercase string tokens.
type DecisionType string

const (
	DecisionApproved    DecisionType = "approved"
	DecisionRejected    DecisionType = "rejected"
	DecisionConditional DecisionType = "conditional"
	DecisionDeferred    DecisionType = "deferred"
)

// ValidDecisionType reports whether s is a known decision token.
func ValidDecisionType(s string) bool {
	switch DecisionType(s) {
	case DecisionApproved, DecisionRejected, DecisionConditional, DecisionDeferred:
		return true
	}
	return false
}

// VoteTally records the raw vote counts behind a decision. No consistency
// between the tally and the decision value is enforced.
type VoteTally struct {
	For     int `json:"for"`
	Against int `json:"against"`
	Abstain int `json:"abstain"`
}

func (t *VoteTally) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *VoteTally) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported vote tally column type %T", value)
	}
}

// CommitteeDecision is a point-in-time vote outcome for an application.
// Creating one does not transition the application's status; re-votes append
// new rows.
type CommitteeDecision struct {
	ID            int          `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID int          `gorm:"column:application_id;not null;index" json:"application_id"`
	MeetingDate   *time.Time   `gorm:"column:meeting_date" json:"meeting_date,omitempty"`
	Decision      DecisionType `gorm:"column:decision;size:20" json:"decision"`
	DecisionNote  *string      `gorm:"column:decision_note;type:text" json:"decision_note,omitempty"`
	AwardGrade    *string      `gorm:"column:award_grade;size:50" json:"award_grade,omitempty"`
	DecidedBy     *int         `gorm:"column:decided_by" json:"decided_by,omitempty"`
	VoteResult    *VoteTally   `gorm:"column:vote_result;type:json" json:"vote_result,omitempty"`
	CreatedAt     time.Time    `gorm:"column:created_at" json:"created_at"`

	// Relations
	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
}

func (CommitteeDecision) TableName() string {
	return "committee_decisions"
}
