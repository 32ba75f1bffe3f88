package models

import "time"

// OrgType values are stored as lowercase string tokens.
type OrgType string

const (
	OrgEnterprise  OrgType = "enterprise"
	OrgInstitute   OrgType = "institute"
	OrgUniversity  OrgType = "university"
	OrgAssociation OrgType = "association"
	OrgOther       OrgType = "other"
)

// ValidOrgType reports whether s is a known organization type token.
func ValidOrgType(s string) bool {
	switch OrgType(s) {
	case OrgEnterprise, OrgInstitute, OrgUniversity, OrgAssociation, OrgOther:
		return true
	}
	return false
}

// Organization represents an applicant or recommender unit. Deleting an
// organization never cascades into applications; the reference is advisory.
type Organization struct {
	ID            int        `gorm:"primaryKey;column:id" json:"id"`
	Name          string     `gorm:"column:name;uniqueIndex;size:200" json:"name"`
	Code          *string    `gorm:"column:code;uniqueIndex;size:50" json:"code,omitempty"`
	OrgType       OrgType    `gorm:"column:org_type;size:20;default:enterprise" json:"org_type"`
	ContactPerson *string    `gorm:"column:contact_person;size:50" json:"contact_person,omitempty"`
	ContactPhone  *string    `gorm:"column:contact_phone;size:20" json:"contact_phone,omitempty"`
	Email         *string    `gorm:"column:email;size:100" json:"email,omitempty"`
	Address       *string    `gorm:"column:address;size:255" json:"address,omitempty"`
	Description   *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Organization) TableName() string {
	return "organizations"
}
