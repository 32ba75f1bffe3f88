package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"award-management-api/models"

	"gorm.io/gorm"
)

// ReviewService owns expert scoring records and the derived score summary on
// the application. The summary is recomputed inside the same transaction as
// every review submission so no partial state is ever visible.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) Get(id int) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) ByExpert(expertID, skip, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	var reviews []models.Review
	err := s.db.Where("expert_id = ?", expertID).Offset(skip).Limit(limit).Find(&reviews).Error
	return reviews, err
}

func (s *ReviewService) ByApplication(appID int) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("application_id = ?", appID).Find(&reviews).Error
	return reviews, err
}

// Assign creates a pending review for the (application, expert) pair, or
// returns the existing one. The composite unique index makes the operation
// idempotent even when two assigns race: the loser of the insert re-reads
// the winner's row.
func (s *ReviewService) Assign(appID, expertID int, p Principal) (*models.Review, error) {
	if !CanAssignExpert(p) {
		return nil, fmt.Errorf("role %s cannot assign experts: %w", p.Role, ErrForbidden)
	}

	var application models.Application
	if err := s.db.First(&application, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %d: %w", appID, ErrNotFound)
		}
		return nil, err
	}

	var expert models.User
	if err := s.db.First(&expert, expertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("expert %d: %w", expertID, ErrNotFound)
		}
		return nil, err
	}
	if expert.Role != models.RoleExpert {
		return nil, fmt.Errorf("user %d is not an expert: %w", expertID, ErrValidation)
	}

	var existing models.Review
	err := s.db.Where("application_id = ? AND expert_id = ?", appID, expertID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := models.Review{
		ApplicationID: appID,
		ExpertID:      expertID,
		Status:        models.ReviewPending,
		IsAnonymous:   true,
	}
	if err := s.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race; the pair now exists.
			if err := s.db.Where("application_id = ? AND expert_id = ?", appID, expertID).
				First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &review, nil
}

// ReviewInput carries expert-entered scoring data. Nil pointers on update
// mean "leave unchanged".
type ReviewInput struct {
	Scores      models.ScoreMap
	TotalScore  *float64
	Comment     *string
	IsAnonymous *bool
}

func (in *ReviewInput) applyTo(review *models.Review) {
	if in.Scores != nil {
		review.Scores = in.Scores
	}
	if in.TotalScore != nil {
		review.TotalScore = in.TotalScore
	}
	if in.Comment != nil {
		review.Comment = in.Comment
	}
	if in.IsAnonymous != nil {
		review.IsAnonymous = *in.IsAnonymous
	}
}

// SaveDraft records scoring data for the principal's review of the
// application, creating the row if assignment never happened. A pending
// review moves to draft.
func (s *ReviewService) SaveDraft(appID int, in ReviewInput, p Principal) (*models.Review, error) {
	if p.Role != models.RoleExpert {
		return nil, fmt.Errorf("role %s cannot review: %w", p.Role, ErrForbidden)
	}

	var application models.Application
	if err := s.db.First(&application, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %d: %w", appID, ErrNotFound)
		}
		return nil, err
	}

	var review models.Review
	err := s.db.Where("application_id = ? AND expert_id = ?", appID, p.UserID).First(&review).Error
	switch {
	case err == nil:
		in.applyTo(&review)
		if review.Status == models.ReviewPending {
			review.Status = models.ReviewDraft
		}
		if err := s.db.Save(&review).Error; err != nil {
			return nil, err
		}
		return &review, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.Review{
			ApplicationID: appID,
			ExpertID:      p.UserID,
			Status:        models.ReviewDraft,
			IsAnonymous:   true,
		}
		in.applyTo(&review)
		if err := s.db.Create(&review).Error; err != nil {
			return nil, err
		}
		return &review, nil
	default:
		return nil, err
	}
}

// Update edits an existing review. Only the owning expert may touch it.
// Editing an already-submitted review is tolerated but does not retrigger
// aggregation; recomputation happens on submit only.
func (s *ReviewService) Update(id int, in ReviewInput, p Principal) (*models.Review, error) {
	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanModifyReview(p, review) {
		return nil, fmt.Errorf("review %d: %w", id, ErrForbidden)
	}

	in.applyTo(review)
	if err := s.db.Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Submit finalizes the review and recomputes the application's score
// summary in the same transaction.
func (s *ReviewService) Submit(id int, p Principal) (*models.Review, error) {
	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanModifyReview(p, review) {
		return nil, fmt.Errorf("review %d: %w", id, ErrForbidden)
	}

	now := time.Now()
	review.Status = models.ReviewSubmitted
	review.SubmittedAt = &now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		return recomputeScoreSummary(tx, review.ApplicationID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// recomputeScoreSummary overwrites the application's cached summary from the
// submitted reviews. An empty submitted set leaves the cache untouched.
func recomputeScoreSummary(tx *gorm.DB, appID int) error {
	var reviews []models.Review
	if err := tx.Where("application_id = ? AND status = ?", appID, models.ReviewSubmitted).
		Find(&reviews).Error; err != nil {
		return err
	}

	summary := SummarizeScores(reviews)
	if summary == nil {
		return nil
	}

	return tx.Model(&models.Application{}).Where("id = ?", appID).
		Update("score_summary_json", summary).Error
}

// SummarizeScores derives the aggregate over submitted reviews, skipping
// reviews without a total score. Returns nil for an empty score set.
func SummarizeScores(submitted []models.Review) *models.ScoreSummary {
	scores := make([]float64, 0, len(submitted))
	for _, r := range submitted {
		if r.Status != models.ReviewSubmitted || r.TotalScore == nil {
			continue
		}
		scores = append(scores, *r.TotalScore)
	}
	if len(scores) == 0 {
		return nil
	}

	sum := 0.0
	max := scores[0]
	min := scores[0]
	for _, v := range scores {
		sum += v
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}

	count := 0
	for _, r := range submitted {
		if r.Status == models.ReviewSubmitted {
			count++
		}
	}

	return &models.ScoreSummary{
		AverageScore: round2(sum / float64(len(scores))),
		ReviewCount:  count,
		Scores:       scores,
		MaxScore:     max,
		MinScore:     min,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ScoreSummaryDetail is the recompute-on-read projection served by the
// summary endpoint. On top of the cached aggregate it reports the upper
// median and how many reviews were assigned in total.
type ScoreSummaryDetail struct {
	AverageScore  float64   `json:"average_score"`
	ReviewCount   int       `json:"review_count"`
	TotalAssigned int       `json:"total_assigned"`
	Scores        []float64 `json:"scores"`
	MaxScore      float64   `json:"max_score"`
	MinScore      float64   `json:"min_score"`
	MedianScore   float64   `json:"median_score"`
}

// ScoreSummary recomputes the full summary for an application. Returns nil
// without error when no submitted review carries a total score.
func (s *ReviewService) ScoreSummary(appID int) (*ScoreSummaryDetail, error) {
	reviews, err := s.ByApplication(appID)
	if err != nil {
		return nil, err
	}

	summary := SummarizeScores(reviews)
	if summary == nil {
		return nil, nil
	}

	sorted := append([]float64(nil), summary.Scores...)
	sort.Float64s(sorted)

	return &ScoreSummaryDetail{
		AverageScore:  summary.AverageScore,
		ReviewCount:   summary.ReviewCount,
		TotalAssigned: len(reviews),
		Scores:        summary.Scores,
		MaxScore:      summary.MaxScore,
		MinScore:      summary.MinScore,
		// Upper median: middle element of the ascending list. For even
		// counts this is the higher of the two middle values.
		MedianScore: sorted[len(sorted)/2],
	}, nil
}
