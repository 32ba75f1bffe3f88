package controllers

import (
	"net/http"
	"strconv"

	"award-management-api/config"
	"award-management-api/middleware"
	"award-management-api/models"
	"award-management-api/services"

	"github.com/gin-gonic/gin"
)

// GetMyReviews lists the calling expert's assigned reviews.
func GetMyReviews(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	svc := services.NewReviewService(config.DB)
	reviews, err := svc.ByExpert(principal.UserID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": len(reviews)})
}

// GetApplicationReviews lists every review of one application.
func GetApplicationReviews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	principal := middleware.CurrentPrincipal(c)
	if !services.CanViewReviews(principal) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view reviews"})
		return
	}

	svc := services.NewReviewService(config.DB)
	reviews, err := svc.ByApplication(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": len(reviews)})
}

type ReviewRequest struct {
	ApplicationID int             `json:"application_id" binding:"required"`
	Scores        models.ScoreMap `json:"scores"`
	TotalScore    *float64        `json:"total_score"`
	Comment       *string         `json:"comment"`
	IsAnonymous   *bool           `json:"is_anonymous"`
}

// CreateReview saves the calling expert's draft scoring for an application,
// creating the review row when assignment never happened.
func CreateReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.ReviewInput{
		Scores:      req.Scores,
		TotalScore:  req.TotalScore,
		Comment:     req.Comment,
		IsAnonymous: req.IsAnonymous,
	}

	svc := services.NewReviewService(config.DB)
	review, err := svc.SaveDraft(req.ApplicationID, in, middleware.CurrentPrincipal(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review, "message": "Review saved successfully"})
}

// UpdateReview edits an existing review of the calling expert.
func UpdateReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	type ReviewUpdateRequest struct {
		Scores      models.ScoreMap `json:"scores"`
		TotalScore  *float64        `json:"total_score"`
		Comment     *string         `json:"comment"`
		IsAnonymous *bool           `json:"is_anonymous"`
	}

	var req ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.ReviewInput{
		Scores:      req.Scores,
		TotalScore:  req.TotalScore,
		Comment:     req.Comment,
		IsAnonymous: req.IsAnonymous,
	}

	svc := services.NewReviewService(config.DB)
	review, err := svc.Update(id, in, middleware.CurrentPrincipal(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review, "message": "Review updated successfully"})
}

// SubmitReview finalizes a review; the application's score summary is
// recomputed in the same transaction.
func SubmitReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	svc := services.NewReviewService(config.DB)
	review, err := svc.Submit(id, middleware.CurrentPrincipal(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review, "message": "Review submitted successfully"})
}

// AssignExpert creates a pending review for an (application, expert) pair.
// Re-assigning the same pair returns the existing review unchanged.
func AssignExpert(c *gin.Context) {
	type AssignRequest struct {
		ApplicationID int `json:"application_id" binding:"required"`
		ExpertID      int `json:"expert_id" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewReviewService(config.DB)
	review, err := svc.Assign(req.ApplicationID, req.ExpertID, middleware.CurrentPrincipal(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review, "message": "Expert assigned successfully"})
}

// GetScoreSummary serves the recomputed aggregate over submitted reviews.
func GetScoreSummary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	principal := middleware.CurrentPrincipal(c)
	if !services.CanViewReviews(principal) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view score summaries"})
		return
	}

	svc := services.NewReviewService(config.DB)
	summary, err := svc.ScoreSummary(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute score summary"})
		return
	}
	if summary == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No score data available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
