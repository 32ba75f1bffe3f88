package services

import (
	"testing"

	"award-management-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewFixture(t *testing.T) (*ReviewService, *models.Application, Principal, Principal) {
	t.Helper()
	db := newTestDB(t)
	org := seedOrganization(t, db, "华新科技")
	applicant := seedUser(t, db, "applicant", models.RoleApplicant, &org.ID)
	staff := seedUser(t, db, "staff", models.RoleStaff, nil)
	expert := seedUser(t, db, "expert1", models.RoleExpert, nil)
	cycle := seedCycle(t, db)

	app := seedDraft(t, db, cycle, principalFor(applicant))
	return NewReviewService(db), app, principalFor(staff), principalFor(expert)
}

func TestAssignIdempotent(t *testing.T) {
	svc, app, staff, expert := reviewFixture(t)

	first, err := svc.Assign(app.ID, expert.UserID, staff)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewPending, first.Status)

	second, err := svc.Assign(app.ID, expert.UserID, staff)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	svc.db.Model(&models.Review{}).Where("application_id = ?", app.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAssignRejectsNonExpert(t *testing.T) {
	svc, app, staff, _ := reviewFixture(t)

	notExpert := seedUser(t, svc.db, "clerk", models.RoleStaff, nil)
	_, err := svc.Assign(app.ID, notExpert.ID, staff)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignForbiddenForExpert(t *testing.T) {
	svc, app, _, expert := reviewFixture(t)

	_, err := svc.Assign(app.ID, expert.UserID, expert)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitRecomputesSummary(t *testing.T) {
	svc, app, staff, expert1 := reviewFixture(t)
	expert2User := seedUser(t, svc.db, "expert2", models.RoleExpert, nil)
	expert2 := principalFor(expert2User)

	r1, err := svc.Assign(app.ID, expert1.UserID, staff)
	require.NoError(t, err)
	r2, err := svc.Assign(app.ID, expert2.UserID, staff)
	require.NoError(t, err)

	_, err = svc.Update(r1.ID, ReviewInput{TotalScore: f64ptr(91)}, expert1)
	require.NoError(t, err)
	_, err = svc.Submit(r1.ID, expert1)
	require.NoError(t, err)

	var afterFirst models.Application
	require.NoError(t, svc.db.First(&afterFirst, app.ID).Error)
	require.NotNil(t, afterFirst.ScoreSummary)
	assert.Equal(t, 91.0, afterFirst.ScoreSummary.AverageScore)
	assert.Equal(t, 1, afterFirst.ScoreSummary.ReviewCount)

	_, err = svc.Update(r2.ID, ReviewInput{TotalScore: f64ptr(91)}, expert2)
	require.NoError(t, err)
	_, err = svc.Submit(r2.ID, expert2)
	require.NoError(t, err)

	var afterSecond models.Application
	require.NoError(t, svc.db.First(&afterSecond, app.ID).Error)
	require.NotNil(t, afterSecond.ScoreSummary)
	assert.Equal(t, 91.0, afterSecond.ScoreSummary.AverageScore)
	assert.Equal(t, 91.0, afterSecond.ScoreSummary.MaxScore)
	assert.Equal(t, 91.0, afterSecond.ScoreSummary.MinScore)
	assert.Equal(t, 2, afterSecond.ScoreSummary.ReviewCount)
}

func TestSummaryUntouchedWithoutSubmission(t *testing.T) {
	svc, app, staff, expert := reviewFixture(t)

	_, err := svc.Assign(app.ID, expert.UserID, staff)
	require.NoError(t, err)

	// Draft scores never reach the cache
	_, err = svc.SaveDraft(app.ID, ReviewInput{TotalScore: f64ptr(88)}, expert)
	require.NoError(t, err)

	var current models.Application
	require.NoError(t, svc.db.First(&current, app.ID).Error)
	assert.Nil(t, current.ScoreSummary)

	detail, err := svc.ScoreSummary(app.ID)
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestUpdateAfterSubmitDoesNotRetrigger(t *testing.T) {
	svc, app, staff, expert := reviewFixture(t)

	r, err := svc.Assign(app.ID, expert.UserID, staff)
	require.NoError(t, err)
	_, err = svc.Update(r.ID, ReviewInput{TotalScore: f64ptr(90)}, expert)
	require.NoError(t, err)
	_, err = svc.Submit(r.ID, expert)
	require.NoError(t, err)

	_, err = svc.Update(r.ID, ReviewInput{TotalScore: f64ptr(100)}, expert)
	require.NoError(t, err)

	var current models.Application
	require.NoError(t, svc.db.First(&current, app.ID).Error)
	require.NotNil(t, current.ScoreSummary)
	assert.Equal(t, 90.0, current.ScoreSummary.AverageScore)
}

func TestOnlyOwnerModifiesReview(t *testing.T) {
	svc, app, staff, expert := reviewFixture(t)
	otherUser := seedUser(t, svc.db, "expert2", models.RoleExpert, nil)
	other := principalFor(otherUser)

	r, err := svc.Assign(app.ID, expert.UserID, staff)
	require.NoError(t, err)

	_, err = svc.Update(r.ID, ReviewInput{TotalScore: f64ptr(80)}, other)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Submit(r.ID, other)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Submit(r.ID, staff)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSaveDraftCreatesRowWithoutAssignment(t *testing.T) {
	svc, app, _, expert := reviewFixture(t)

	r, err := svc.SaveDraft(app.ID, ReviewInput{
		Scores:     models.ScoreMap{"创新性": 45, "应用价值": 40},
		TotalScore: f64ptr(85),
	}, expert)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewDraft, r.Status)
	assert.Equal(t, expert.UserID, r.ExpertID)

	// Saving again updates the same row
	again, err := svc.SaveDraft(app.ID, ReviewInput{TotalScore: f64ptr(87)}, expert)
	require.NoError(t, err)
	assert.Equal(t, r.ID, again.ID)
	require.NotNil(t, again.TotalScore)
	assert.Equal(t, 87.0, *again.TotalScore)
}

func TestScoreSummaryUpperMedian(t *testing.T) {
	svc, app, staff, expert1 := reviewFixture(t)
	experts := []Principal{expert1}
	for _, name := range []string{"expert2", "expert3"} {
		u := seedUser(t, svc.db, name, models.RoleExpert, nil)
		experts = append(experts, principalFor(u))
	}

	for i, score := range []float64{94, 94, 92} {
		r, err := svc.Assign(app.ID, experts[i].UserID, staff)
		require.NoError(t, err)
		_, err = svc.Update(r.ID, ReviewInput{TotalScore: f64ptr(score)}, experts[i])
		require.NoError(t, err)
		_, err = svc.Submit(r.ID, experts[i])
		require.NoError(t, err)
	}

	// A pending assignment counts toward total_assigned only
	pendingUser := seedUser(t, svc.db, "expert4", models.RoleExpert, nil)
	_, err := svc.Assign(app.ID, pendingUser.ID, staff)
	require.NoError(t, err)

	detail, err := svc.ScoreSummary(app.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, 93.33, detail.AverageScore)
	assert.Equal(t, 94.0, detail.MedianScore)
	assert.Equal(t, 94.0, detail.MaxScore)
	assert.Equal(t, 92.0, detail.MinScore)
	assert.Equal(t, 3, detail.ReviewCount)
	assert.Equal(t, 4, detail.TotalAssigned)
}

func TestSummarizeScoresSkipsMissingTotals(t *testing.T) {
	reviews := []models.Review{
		{Status: models.ReviewSubmitted, TotalScore: f64ptr(90)},
		{Status: models.ReviewSubmitted, TotalScore: nil},
		{Status: models.ReviewDraft, TotalScore: f64ptr(50)},
	}

	summary := SummarizeScores(reviews)
	require.NotNil(t, summary)
	assert.Equal(t, 90.0, summary.AverageScore)
	// Count covers every submitted review, scored or not
	assert.Equal(t, 2, summary.ReviewCount)
	assert.Equal(t, []float64{90}, summary.Scores)

	assert.Nil(t, SummarizeScores(nil))
	assert.Nil(t, SummarizeScores([]models.Review{{Status: models.ReviewDraft, TotalScore: f64ptr(70)}}))
}
