package services

import (
	"testing"

	"award-management-api/models"

	"github.com/stretchr/testify/assert"
)

func intptr(v int) *int { return &v }

func TestCanViewApplication(t *testing.T) {
	app := &models.Application{ApplicantUnitID: 7}

	tests := []struct {
		name string
		p    Principal
		want bool
	}{
		{"applicant same unit", Principal{Role: models.RoleApplicant, OrganizationID: intptr(7)}, true},
		{"applicant other unit", Principal{Role: models.RoleApplicant, OrganizationID: intptr(8)}, false},
		{"applicant without unit", Principal{Role: models.RoleApplicant}, false},
		{"staff", Principal{Role: models.RoleStaff}, true},
		{"expert", Principal{Role: models.RoleExpert}, true},
		{"committee", Principal{Role: models.RoleCommittee}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewApplication(tt.p, app))
		})
	}
}

func TestCanEditApplication(t *testing.T) {
	app := &models.Application{ApplicantUnitID: 7}

	assert.True(t, CanEditApplication(Principal{Role: models.RoleAdmin}, app))
	assert.True(t, CanEditApplication(Principal{Role: models.RoleApplicant, OrganizationID: intptr(7)}, app))
	assert.True(t, CanEditApplication(Principal{Role: models.RoleRecommender, OrganizationID: intptr(7)}, app))
	assert.False(t, CanEditApplication(Principal{Role: models.RoleApplicant, OrganizationID: intptr(9)}, app))
	assert.False(t, CanEditApplication(Principal{Role: models.RoleStaff}, app))
	assert.False(t, CanEditApplication(Principal{Role: models.RoleExpert}, app))
}

func TestCanDeleteApplication(t *testing.T) {
	app := &models.Application{ApplicantUnitID: 7}

	assert.True(t, CanDeleteApplication(Principal{Role: models.RoleAdmin}, app))
	assert.True(t, CanDeleteApplication(Principal{Role: models.RoleApplicant, OrganizationID: intptr(7)}, app))
	// Recommenders may edit but never delete
	assert.False(t, CanDeleteApplication(Principal{Role: models.RoleRecommender, OrganizationID: intptr(7)}, app))
	assert.False(t, CanDeleteApplication(Principal{Role: models.RoleApplicant, OrganizationID: intptr(9)}, app))
}

func TestStatusAndReviewGates(t *testing.T) {
	assert.True(t, CanUpdateApplicationStatus(Principal{Role: models.RoleAdmin}))
	assert.True(t, CanUpdateApplicationStatus(Principal{Role: models.RoleStaff}))
	assert.True(t, CanUpdateApplicationStatus(Principal{Role: models.RoleCommittee}))
	assert.False(t, CanUpdateApplicationStatus(Principal{Role: models.RoleApplicant}))
	assert.False(t, CanUpdateApplicationStatus(Principal{Role: models.RoleExpert}))

	assert.True(t, CanAssignExpert(Principal{Role: models.RoleStaff}))
	assert.False(t, CanAssignExpert(Principal{Role: models.RoleCommittee}))

	assert.True(t, CanViewReviews(Principal{Role: models.RoleCommittee}))
	assert.False(t, CanViewReviews(Principal{Role: models.RoleExpert}))
	assert.False(t, CanViewReviews(Principal{Role: models.RolePublic}))
}

func TestCanModifyReview(t *testing.T) {
	review := &models.Review{ExpertID: 3}

	assert.True(t, CanModifyReview(Principal{UserID: 3, Role: models.RoleExpert}, review))
	assert.False(t, CanModifyReview(Principal{UserID: 4, Role: models.RoleExpert}, review))
	// Even admins never touch another expert's scoring record
	assert.False(t, CanModifyReview(Principal{UserID: 3, Role: models.RoleAdmin}, review))
}
