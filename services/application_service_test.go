package services

import (
	"testing"

	"award-management-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequiresTitle(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	cycle := seedCycle(t, db)

	svc := NewApplicationService(db)
	_, err := svc.Create(cycle.ID, org.ID, ApplicationContent{}, principalFor(applicant))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRejectsUnknownCycle(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)

	svc := NewApplicationService(db)
	_, err := svc.Create(9999, org.ID, ApplicationContent{Title: strptr("测试项目")}, principalFor(applicant))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOpensDraft(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	cycle := seedCycle(t, db)

	app := seedDraft(t, db, cycle, principalFor(applicant))

	assert.Equal(t, models.StatusDraft, app.Status)
	require.NotNil(t, app.CurrentStage)
	assert.Equal(t, "草稿", *app.CurrentStage)
	assert.Nil(t, app.SubmissionTime)
}

func TestUpdateContentDraftOnly(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	cycle := seedCycle(t, db)
	p := principalFor(applicant)

	svc := NewApplicationService(db)
	app := seedDraft(t, db, cycle, p)

	updated, err := svc.UpdateContent(app.ID, ApplicationContent{Summary: strptr("项目摘要")}, p)
	require.NoError(t, err)
	require.NotNil(t, updated.Summary)
	assert.Equal(t, "项目摘要", *updated.Summary)

	_, err = svc.Submit(app.ID, p)
	require.NoError(t, err)

	// Submitted content is frozen
	_, err = svc.UpdateContent(app.ID, ApplicationContent{Summary: strptr("改动")}, p)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSubmitStampsTimeAndStage(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	cycle := seedCycle(t, db)
	p := principalFor(applicant)

	svc := NewApplicationService(db)
	app := seedDraft(t, db, cycle, p)

	submitted, err := svc.Submit(app.ID, p)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmissionTime)
	require.NotNil(t, submitted.CurrentStage)
	assert.Equal(t, "已提交待推荐", *submitted.CurrentStage)

	// Double submit is rejected
	_, err = svc.Submit(app.ID, p)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateStatusAcceptsAnyTransition(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	staff := seedUser(t, db, "staff", models.RoleStaff, nil)
	cycle := seedCycle(t, db)

	svc := NewApplicationService(db)
	app := seedDraft(t, db, cycle, principalFor(applicant))

	approved, err := svc.UpdateStatus(app.ID, models.StatusApproved, "终审通过", principalFor(staff))
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.CurrentStage)
	assert.Equal(t, "终审通过", *approved.CurrentStage)

	// Backward moves are accepted too; the setter enforces no forward order.
	back, err := svc.UpdateStatus(app.ID, models.StatusDraft, "", principalFor(staff))
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, back.Status)
}

func TestUpdateStatusRejectsUnknownToken(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	staff := seedUser(t, db, "staff", models.RoleStaff, nil)
	cycle := seedCycle(t, db)

	svc := NewApplicationService(db)
	app := seedDraft(t, db, cycle, principalFor(applicant))

	_, err := svc.UpdateStatus(app.ID, models.ApplicationStatus("reviewing"), "", principalFor(staff))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusForbiddenForApplicant(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	cycle := seedCycle(t, db)
	p := principalFor(applicant)

	svc := NewApplicationService(db)
	app := seedDraft(t, db, cycle, p)

	_, err := svc.UpdateStatus(app.ID, models.StatusRecommended, "", p)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteDraftCascades(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	expert := seedUser(t, db, "expert", models.RoleExpert, nil)
	staff := seedUser(t, db, "staff", models.RoleStaff, nil)
	cycle := seedCycle(t, db)
	p := principalFor(applicant)

	svc := NewApplicationService(db)
	app := seedDraft(t, db, cycle, p)

	_, err := svc.AddAttachment(app.ID, "材料.pdf", "/tmp/x.pdf", ".pdf", 100, nil, applicant.ID)
	require.NoError(t, err)

	reviews := NewReviewService(db)
	_, err = reviews.Assign(app.ID, expert.ID, principalFor(staff))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(app.ID, p))

	var attachments, reviewRows int64
	db.Model(&models.Attachment{}).Where("application_id = ?", app.ID).Count(&attachments)
	db.Model(&models.Review{}).Where("application_id = ?", app.ID).Count(&reviewRows)
	assert.Zero(t, attachments)
	assert.Zero(t, reviewRows)

	_, err = svc.Get(app.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSubmittedRejected(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	cycle := seedCycle(t, db)
	p := principalFor(applicant)

	svc := NewApplicationService(db)
	app := seedDraft(t, db, cycle, p)
	_, err := svc.Submit(app.ID, p)
	require.NoError(t, err)

	err = svc.Delete(app.ID, p)
	assert.ErrorIs(t, err, ErrInvalidState)

	// The row and its history survive
	_, err = svc.Get(app.ID)
	assert.NoError(t, err)
}

func TestListScopedByUnitAndStatus(t *testing.T) {
	db := newTestDB(t)
	orgA := seedOrganization(t, db, "单位A")
	orgB := seedOrganization(t, db, "单位B")
	applicantA := seedUser(t, db, "a", models.RoleApplicant, &orgA.ID)
	applicantB := seedUser(t, db, "b", models.RoleApplicant, &orgB.ID)
	cycle := seedCycle(t, db)

	svc := NewApplicationService(db)
	appA := seedDraft(t, db, cycle, principalFor(applicantA))
	seedDraft(t, db, cycle, principalFor(applicantB))

	_, err := svc.Submit(appA.ID, principalFor(applicantA))
	require.NoError(t, err)

	byUnit, err := svc.List(ApplicationFilter{ApplicantUnitID: orgA.ID})
	require.NoError(t, err)
	require.Len(t, byUnit, 1)
	assert.Equal(t, appA.ID, byUnit[0].ID)

	byStatus, err := svc.List(ApplicationFilter{Status: "submitted"})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, appA.ID, byStatus[0].ID)
}
