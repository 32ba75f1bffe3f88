package controllers

import (
	"net/http"
	"time"

	"award-management-api/config"
	"award-management-api/middleware"
	"award-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetAwards lists award definitions with optional year/level/status filters.
func GetAwards(c *gin.Context) {
	query := config.DB.Model(&models.Award{})

	if year := c.Query("year"); year != "" {
		query = query.Where("year = ?", year)
	}
	if level := c.Query("level"); level != "" {
		if !models.ValidAwardLevel(level) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid award level"})
			return
		}
		query = query.Where("level = ?", level)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var awards []models.Award
	if err := query.Order("year DESC, id").Find(&awards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch awards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"awards": awards, "total": len(awards)})
}

// GetAward returns one award with its cycles.
func GetAward(c *gin.Context) {
	id := c.Param("id")

	var award models.Award
	if err := config.DB.Preload("Cycles").First(&award, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Award not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"award": award})
}

type AwardRequest struct {
	Name             string     `json:"name" binding:"required"`
	Code             string     `json:"code" binding:"required"`
	Level            string     `json:"level"`
	Year             int        `json:"year" binding:"required"`
	Description      *string    `json:"description"`
	ApplicationStart *time.Time `json:"application_start"`
	ApplicationEnd   *time.Time `json:"application_end"`
}

// CreateAward registers a new award definition.
func CreateAward(c *gin.Context) {
	var req AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Level == "" {
		req.Level = string(models.LevelIndustry)
	}
	if !models.ValidAwardLevel(req.Level) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid award level"})
		return
	}

	var count int64
	config.DB.Model(&models.Award{}).Where("code = ?", req.Code).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Award code already exists"})
		return
	}

	principal := middleware.CurrentPrincipal(c)
	award := models.Award{
		Name:             req.Name,
		Code:             req.Code,
		Level:            models.AwardLevel(req.Level),
		Year:             req.Year,
		Description:      req.Description,
		ApplicationStart: req.ApplicationStart,
		ApplicationEnd:   req.ApplicationEnd,
		Status:           "active",
		CreatedBy:        &principal.UserID,
	}

	if err := config.DB.Create(&award).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create award"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"award": award, "message": "Award created successfully"})
}

// UpdateAward edits an award definition.
func UpdateAward(c *gin.Context) {
	id := c.Param("id")

	var award models.Award
	if err := config.DB.First(&award, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Award not found"})
		return
	}

	type AwardUpdateRequest struct {
		Name             *string    `json:"name"`
		Level            *string    `json:"level"`
		Year             *int       `json:"year"`
		Description      *string    `json:"description"`
		ApplicationStart *time.Time `json:"application_start"`
		ApplicationEnd   *time.Time `json:"application_end"`
		Status           *string    `json:"status"`
	}

	var req AwardUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Level != nil {
		if !models.ValidAwardLevel(*req.Level) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid award level"})
			return
		}
		award.Level = models.AwardLevel(*req.Level)
	}
	if req.Name != nil {
		award.Name = *req.Name
	}
	if req.Year != nil {
		award.Year = *req.Year
	}
	if req.Description != nil {
		award.Description = req.Description
	}
	if req.ApplicationStart != nil {
		award.ApplicationStart = req.ApplicationStart
	}
	if req.ApplicationEnd != nil {
		award.ApplicationEnd = req.ApplicationEnd
	}
	if req.Status != nil {
		award.Status = *req.Status
	}

	now := time.Now()
	award.UpdatedAt = &now

	if err := config.DB.Save(&award).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update award"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"award": award, "message": "Award updated successfully"})
}

// GetAwardCycles lists cycles, optionally for a single award.
func GetAwardCycles(c *gin.Context) {
	query := config.DB.Model(&models.AwardCycle{}).Preload("Award")

	if awardID := c.Query("award_id"); awardID != "" {
		query = query.Where("award_id = ?", awardID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var cycles []models.AwardCycle
	if err := query.Order("start_date DESC").Find(&cycles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch award cycles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cycles": cycles, "total": len(cycles)})
}

// GetAwardCycle returns one cycle with its parent award.
func GetAwardCycle(c *gin.Context) {
	id := c.Param("id")

	var cycle models.AwardCycle
	if err := config.DB.Preload("Award").First(&cycle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Award cycle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cycle": cycle})
}

type AwardCycleRequest struct {
	AwardID   int                 `json:"award_id" binding:"required"`
	CycleName string              `json:"cycle_name" binding:"required"`
	StartDate time.Time           `json:"start_date" binding:"required"`
	EndDate   time.Time           `json:"end_date" binding:"required"`
	Rules     models.ScoringRules `json:"rules"`
	Quota     *int                `json:"quota"`
	Budget    *float64            `json:"budget"`
}

// CreateAwardCycle opens a new round under an existing award.
func CreateAwardCycle(c *gin.Context) {
	var req AwardCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var award models.Award
	if err := config.DB.First(&award, req.AwardID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Award not found"})
		return
	}

	cycle := models.AwardCycle{
		AwardID:   req.AwardID,
		CycleName: req.CycleName,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Rules:     req.Rules,
		Quota:     req.Quota,
		Budget:    req.Budget,
		Status:    "active",
	}

	if err := cycle.ValidateWindow(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&cycle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create award cycle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cycle": cycle, "message": "Award cycle created successfully"})
}
