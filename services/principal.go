package services

import (
	"award-management-api/models"
)

// Principal is the authenticated identity every core operation runs under.
// The auth middleware fills it from JWT claims; services trust it without
// re-verifying credentials.
type Principal struct {
	UserID         int
	Username       string
	Role           models.UserRole
	OrganizationID *int
}

func (p Principal) isStaff() bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleStaff
}

func (p Principal) sameUnit(orgID int) bool {
	return p.OrganizationID != nil && *p.OrganizationID == orgID
}

// Capability checks are centralized here instead of inline role comparisons
// scattered across handlers, so the lifecycle's authorization rules can be
// tested without the transport layer.

// CanViewApplication restricts applicants to applications of their own unit.
// Every other authenticated role has read access.
func CanViewApplication(p Principal, app *models.Application) bool {
	if p.Role == models.RoleApplicant {
		return p.sameUnit(app.ApplicantUnitID)
	}
	return true
}

// CanCreateApplication allows applicant and recommender units to open drafts.
func CanCreateApplication(p Principal) bool {
	return p.Role == models.RoleApplicant || p.Role == models.RoleRecommender
}

// CanEditApplication covers content mutation and submit.
func CanEditApplication(p Principal, app *models.Application) bool {
	if p.Role == models.RoleAdmin {
		return true
	}
	if p.Role == models.RoleApplicant || p.Role == models.RoleRecommender {
		return p.sameUnit(app.ApplicantUnitID)
	}
	return false
}

// CanDeleteApplication mirrors the edit rule minus recommenders.
func CanDeleteApplication(p Principal, app *models.Application) bool {
	if p.Role == models.RoleAdmin {
		return true
	}
	return p.Role == models.RoleApplicant && p.sameUnit(app.ApplicantUnitID)
}

// CanUpdateApplicationStatus gates the generic status-update operation.
func CanUpdateApplicationStatus(p Principal) bool {
	return p.isStaff() || p.Role == models.RoleCommittee
}

// CanAssignExpert gates review assignment.
func CanAssignExpert(p Principal) bool {
	return p.isStaff()
}

// CanModifyReview allows only the owning expert to edit or submit a review.
func CanModifyReview(p Principal, review *models.Review) bool {
	return p.Role == models.RoleExpert && p.UserID == review.ExpertID
}

// CanViewReviews gates per-application review listings and score summaries.
func CanViewReviews(p Principal) bool {
	return p.isStaff() || p.Role == models.RoleCommittee
}
