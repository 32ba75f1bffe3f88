package models

import (
	"time"
)

// UserRole values are stored as lowercase string tokens.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleStaff       UserRole = "staff"
	RoleRecommender UserRole = "recommender"
	RoleApplicant   UserRole = "applicant"
	RoleExpert      UserRole = "expert"
	RoleCommittee   UserRole = "committee"
	RolePublic      UserRole = "public"
)

// ValidRole reports whether s is one of the seven known role tokens.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleAdmin, RoleStaff, RoleRecommender, RoleApplicant, RoleExpert, RoleCommittee, RolePublic:
		return true
	}
	return false
}

type User struct {
	ID             int        `gorm:"primaryKey;column:id" json:"id"`
	Username       string     `gorm:"column:username;uniqueIndex;size:50" json:"username"`
	PasswordHash   string     `gorm:"column:password_hash;size:255" json:"-"`
	RealName       string     `gorm:"column:real_name;size:50" json:"real_name"`
	Email          *string    `gorm:"column:email;uniqueIndex;size:100" json:"email,omitempty"`
	Mobile         *string    `gorm:"column:mobile;size:20" json:"mobile,omitempty"`
	Role           UserRole   `gorm:"column:role;size:20;default:applicant" json:"role"`
	OrganizationID *int       `gorm:"column:organization_id" json:"organization_id,omitempty"`
	IsActive       bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	// Relations
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

func (User) TableName() string {
	return "users"
}
