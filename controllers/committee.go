package controllers

import (
	"net/http"
	"strconv"
	"time"

	"award-management-api/config"
	"award-management-api/middleware"
	"award-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetDecisions lists committee decisions, optionally for one application.
func GetDecisions(c *gin.Context) {
	query := config.DB.Model(&models.CommitteeDecision{})

	if appID := c.Query("application_id"); appID != "" {
		query = query.Where("application_id = ?", appID)
	}
	if decision := c.Query("decision"); decision != "" {
		query = query.Where("decision = ?", decision)
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var decisions []models.CommitteeDecision
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&decisions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch decisions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decisions": decisions, "total": len(decisions)})
}

// GetDecision returns one decision by ID.
func GetDecision(c *gin.Context) {
	id := c.Param("id")

	var decision models.CommitteeDecision
	if err := config.DB.First(&decision, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Decision not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decision": decision})
}

// GetApplicationDecisions lists the full decision history of an application,
// oldest first. Re-votes append rows so the history is never rewritten.
func GetApplicationDecisions(c *gin.Context) {
	id := c.Param("id")

	var decisions []models.CommitteeDecision
	if err := config.DB.Where("application_id = ?", id).
		Order("created_at").Find(&decisions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch decisions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decisions": decisions, "total": len(decisions)})
}

type DecisionRequest struct {
	ApplicationID int               `json:"application_id" binding:"required"`
	Decision      string            `json:"decision" binding:"required"`
	MeetingDate   *time.Time        `json:"meeting_date"`
	DecisionNote  *string           `json:"decision_note"`
	AwardGrade    *string           `json:"award_grade"`
	VoteResult    *models.VoteTally `json:"vote_result"`
}

// CreateDecision records a vote outcome. The application's status is not
// touched; moving it to approved/rejected is a separate explicit step.
func CreateDecision(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidDecisionType(req.Decision) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid decision type"})
		return
	}

	var application models.Application
	if err := config.DB.First(&application, req.ApplicationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	principal := middleware.CurrentPrincipal(c)
	decision := models.CommitteeDecision{
		ApplicationID: req.ApplicationID,
		MeetingDate:   req.MeetingDate,
		Decision:      models.DecisionType(req.Decision),
		DecisionNote:  req.DecisionNote,
		AwardGrade:    req.AwardGrade,
		DecidedBy:     &principal.UserID,
		VoteResult:    req.VoteResult,
	}

	if err := config.DB.Create(&decision).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create decision"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"decision": decision, "message": "Decision recorded successfully"})
}

// UpdateDecision edits a recorded decision.
func UpdateDecision(c *gin.Context) {
	id := c.Param("id")

	var decision models.CommitteeDecision
	if err := config.DB.First(&decision, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Decision not found"})
		return
	}

	type DecisionUpdateRequest struct {
		Decision     *string           `json:"decision"`
		MeetingDate  *time.Time        `json:"meeting_date"`
		DecisionNote *string           `json:"decision_note"`
		AwardGrade   *string           `json:"award_grade"`
		VoteResult   *models.VoteTally `json:"vote_result"`
	}

	var req DecisionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Decision != nil {
		if !models.ValidDecisionType(*req.Decision) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid decision type"})
			return
		}
		decision.Decision = models.DecisionType(*req.Decision)
	}
	if req.MeetingDate != nil {
		decision.MeetingDate = req.MeetingDate
	}
	if req.DecisionNote != nil {
		decision.DecisionNote = req.DecisionNote
	}
	if req.AwardGrade != nil {
		decision.AwardGrade = req.AwardGrade
	}
	if req.VoteResult != nil {
		decision.VoteResult = req.VoteResult
	}

	if err := config.DB.Save(&decision).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update decision"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decision": decision, "message": "Decision updated successfully"})
}

// DeleteDecision removes a decision record.
func DeleteDecision(c *gin.Context) {
	id := c.Param("id")

	var decision models.CommitteeDecision
	if err := config.DB.First(&decision, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Decision not found"})
		return
	}

	if err := config.DB.Delete(&decision).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete decision"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Decision deleted successfully"})
}
