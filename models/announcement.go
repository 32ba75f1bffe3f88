package models

import "time"

// Announcement publishes results for an objection window. Visibility is
// gated on status alone; the time window fields are descriptive.
type Announcement struct {
	ID               int        `gorm:"primaryKey;column:id" json:"id"`
	Title            string     `gorm:"column:title;size:200;not null" json:"title"`
	Content          string     `gorm:"column:content;type:text;not null" json:"content"`
	AnnouncementType *string    `gorm:"column:announcement_type;size:50" json:"announcement_type,omitempty"`
	StartTime        time.Time  `gorm:"column:start_time;not null" json:"start_time"`
	EndTime          time.Time  `gorm:"column:end_time;not null" json:"end_time"`
	Status           string     `gorm:"column:status;size:20;default:active" json:"status"`
	CreatedBy        *int       `gorm:"column:created_by" json:"created_by,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	// Relations
	Objections []Objection `gorm:"foreignKey:AnnouncementID" json:"objections,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// Objection is an advisory record against an announcement. It never mutates
// the application or the announcement; staff resolve it by editing the
// response and status fields.
type Objection struct {
	ID               int        `gorm:"primaryKey;column:id" json:"id"`
	AnnouncementID   int        `gorm:"column:announcement_id;not null;index" json:"announcement_id"`
	ApplicationID    *int       `gorm:"column:application_id" json:"application_id,omitempty"`
	ObjectorName     *string    `gorm:"column:objector_name;size:100" json:"objector_name,omitempty"`
	ObjectorContact  *string    `gorm:"column:objector_contact;size:100" json:"objector_contact,omitempty"`
	ObjectionContent string     `gorm:"column:objection_content;type:text;not null" json:"objection_content"`
	Response         *string    `gorm:"column:response;type:text" json:"response,omitempty"`
	Status           string     `gorm:"column:status;size:20;default:pending" json:"status"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Objection) TableName() string {
	return "objections"
}
