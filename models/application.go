package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ApplicationStatus values are stored as lowercase string tokens and are
// transmitted on the wire verbatim (e.g. "expert_review").
type ApplicationStatus string

const (
	StatusDraft               ApplicationStatus = "draft"
	StatusSubmitted           ApplicationStatus = "submitted"
	StatusRecommended         ApplicationStatus = "recommended"
	StatusPreliminaryApproved ApplicationStatus = "preliminary_approved"
	StatusPreliminaryRejected ApplicationStatus = "preliminary_rejected"
	StatusExpertReview        ApplicationStatus = "expert_review"
	StatusCommitteeReview     ApplicationStatus = "committee_review"
	StatusApproved            ApplicationStatus = "approved"
	StatusRejected            ApplicationStatus = "rejected"
	StatusAnnounced           ApplicationStatus = "announced"
	StatusArchived            ApplicationStatus = "archived"
)

// ValidApplicationStatus reports whether s is one of the eleven lifecycle tokens.
func ValidApplicationStatus(s string) bool {
	switch ApplicationStatus(s) {
	case StatusDraft, StatusSubmitted, StatusRecommended, StatusPreliminaryApproved,
		StatusPreliminaryRejected, StatusExpertReview, StatusCommitteeReview,
		StatusApproved, StatusRejected, StatusAnnounced, StatusArchived:
		return true
	}
	return false
}

// StageLabels maps each post-draft status to the stage label shown on the
// application. Submit always writes the "submitted" label; the generic status
// update writes the label for the target status when one exists.
var StageLabels = map[ApplicationStatus]string{
	StatusDraft:               "草稿",
	StatusSubmitted:           "已提交待推荐",
	StatusRecommended:         "推荐通过待初审",
	StatusPreliminaryApproved: "初审通过待专家评审",
	StatusPreliminaryRejected: "初审不通过",
	StatusExpertReview:        "专家评审中",
	StatusCommitteeReview:     "评委会终审中",
	StatusApproved:            "终审通过",
	StatusRejected:            "终审不通过",
	StatusAnnounced:           "公示中",
	StatusArchived:            "已归档",
}

// ScoreSummary is the derived aggregate over an application's submitted
// expert reviews. It is a cache recomputed by the review service, never
// edited independently.
type ScoreSummary struct {
	AverageScore float64   `json:"average_score"`
	ReviewCount  int       `json:"review_count"`
	Scores       []float64 `json:"scores"`
	MaxScore     float64   `json:"max_score"`
	MinScore     float64   `json:"min_score"`
}

func (s *ScoreSummary) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *ScoreSummary) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported score summary column type %T", value)
	}
}

type Application struct {
	ID              int               `gorm:"primaryKey;column:id" json:"id"`
	AwardCycleID    int               `gorm:"column:award_cycle_id;not null" json:"award_cycle_id"`
	ApplicantUnitID int               `gorm:"column:applicant_unit_id;not null" json:"applicant_unit_id"`
	ApplicantUserID *int              `gorm:"column:applicant_user_id" json:"applicant_user_id,omitempty"`
	Title           string            `gorm:"column:title;size:200;not null" json:"title"`
	Category        *string           `gorm:"column:category;size:50" json:"category,omitempty"`
	LeaderName      *string           `gorm:"column:leader_name;size:50" json:"leader_name,omitempty"`
	LeaderTitle     *string           `gorm:"column:leader_title;size:50" json:"leader_title,omitempty"`
	TeamMembers     *string           `gorm:"column:team_members;type:text" json:"team_members,omitempty"`
	Summary         *string           `gorm:"column:summary;type:text" json:"summary,omitempty"`
	TechnicalDetail *string           `gorm:"column:technical_details;type:text" json:"technical_details,omitempty"`
	InnovationPoint *string           `gorm:"column:innovation_points;type:text" json:"innovation_points,omitempty"`
	ApplicationVal  *string           `gorm:"column:application_value;type:text" json:"application_value,omitempty"`
	EconomicBenefit *string           `gorm:"column:economic_benefit;type:text" json:"economic_benefit,omitempty"`
	SocialBenefit   *string           `gorm:"column:social_benefit;type:text" json:"social_benefit,omitempty"`
	Status          ApplicationStatus `gorm:"column:submission_status;size:30;default:draft" json:"submission_status"`
	SubmissionTime  *time.Time        `gorm:"column:submission_time" json:"submission_time,omitempty"`
	CurrentStage    *string           `gorm:"column:current_stage;size:50" json:"current_stage,omitempty"`
	FinalResult     *string           `gorm:"column:final_result;size:50" json:"final_result,omitempty"`
	ScoreSummary    *ScoreSummary     `gorm:"column:score_summary_json;type:json" json:"score_summary,omitempty"`
	CreatedAt       time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       *time.Time        `gorm:"column:updated_at" json:"updated_at,omitempty"`

	// Relations
	AwardCycle    *AwardCycle   `gorm:"foreignKey:AwardCycleID" json:"award_cycle,omitempty"`
	ApplicantUnit *Organization `gorm:"foreignKey:ApplicantUnitID" json:"applicant_unit,omitempty"`
	ApplicantUser *User         `gorm:"foreignKey:ApplicantUserID" json:"applicant_user,omitempty"`
	Attachments   []Attachment  `gorm:"foreignKey:ApplicationID" json:"attachments,omitempty"`
	Reviews       []Review      `gorm:"foreignKey:ApplicationID" json:"reviews,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// Attachment rows are append-only; a re-upload is a new row, never an
// in-place replace.
type Attachment struct {
	ID            int       `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID int       `gorm:"column:application_id;not null;index" json:"application_id"`
	Filename      string    `gorm:"column:filename;size:255;not null" json:"filename"`
	Filepath      string    `gorm:"column:filepath;size:500;not null" json:"filepath"`
	FileType      *string   `gorm:"column:file_type;size:20" json:"file_type,omitempty"`
	FileSize      int64     `gorm:"column:file_size" json:"file_size"`
	Description   *string   `gorm:"column:description;size:255" json:"description,omitempty"`
	UploadedBy    *int      `gorm:"column:uploaded_by" json:"uploaded_by,omitempty"`
	Version       int       `gorm:"column:version;default:1" json:"version"`
	UploadTime    time.Time `gorm:"column:upload_time" json:"upload_time"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// Recommender tracks an endorsing unit for an application. Kept for its
// foreign-key presence; no workflow of its own.
type Recommender struct {
	ID                int        `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID     int        `gorm:"column:application_id;not null;index" json:"application_id"`
	RecommenderUnitID *int       `gorm:"column:recommender_unit_id" json:"recommender_unit_id,omitempty"`
	RecommenderUserID *int       `gorm:"column:recommender_user_id" json:"recommender_user_id,omitempty"`
	RecommendTime     *time.Time `gorm:"column:recommend_time" json:"recommend_time,omitempty"`
	RecommendStatus   string     `gorm:"column:recommend_status;size:20;default:pending" json:"recommend_status"`
	RecommendDocument *string    `gorm:"column:recommend_document;size:500" json:"recommend_document,omitempty"`
	RecommendOpinion  *string    `gorm:"column:recommend_opinion;type:text" json:"recommend_opinion,omitempty"`
	CreatedAt         time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (Recommender) TableName() string {
	return "recommenders"
}
