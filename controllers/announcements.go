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

// GetAnnouncements is the public listing. Only active announcements are
// visible; the time window fields are descriptive, not enforced.
func GetAnnouncements(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var announcements []models.Announcement
	if err := config.DB.Where("status = ?", "active").
		Order("start_time DESC").Offset(skip).Limit(limit).Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcements": announcements, "total": len(announcements)})
}

// GetAnnouncement returns one active announcement. Inactive ones read as
// not found to the public.
func GetAnnouncement(c *gin.Context) {
	id := c.Param("id")

	var announcement models.Announcement
	if err := config.DB.Where("status = ?", "active").
		First(&announcement, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcement": announcement})
}

type AnnouncementRequest struct {
	Title            string    `json:"title" binding:"required"`
	Content          string    `json:"content" binding:"required"`
	AnnouncementType *string   `json:"announcement_type"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	EndTime          time.Time `json:"end_time" binding:"required"`
}

// CreateAnnouncement publishes a result announcement.
func CreateAnnouncement(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := middleware.CurrentPrincipal(c)
	announcement := models.Announcement{
		Title:            req.Title,
		Content:          req.Content,
		AnnouncementType: req.AnnouncementType,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Status:           "active",
		CreatedBy:        &principal.UserID,
	}

	if err := config.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"announcement": announcement, "message": "Announcement created successfully"})
}

// UpdateAnnouncement edits an announcement; setting status to anything but
// active withdraws it from public view.
func UpdateAnnouncement(c *gin.Context) {
	id := c.Param("id")

	var announcement models.Announcement
	if err := config.DB.First(&announcement, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	type AnnouncementUpdateRequest struct {
		Title            *string    `json:"title"`
		Content          *string    `json:"content"`
		AnnouncementType *string    `json:"announcement_type"`
		StartTime        *time.Time `json:"start_time"`
		EndTime          *time.Time `json:"end_time"`
		Status           *string    `json:"status"`
	}

	var req AnnouncementUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}
	if req.AnnouncementType != nil {
		announcement.AnnouncementType = req.AnnouncementType
	}
	if req.StartTime != nil {
		announcement.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		announcement.EndTime = *req.EndTime
	}
	if req.Status != nil {
		announcement.Status = *req.Status
	}

	now := time.Now()
	announcement.UpdatedAt = &now

	if err := config.DB.Save(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcement": announcement, "message": "Announcement updated successfully"})
}

type ObjectionRequest struct {
	ApplicationID    *int    `json:"application_id"`
	ObjectorName     *string `json:"objector_name"`
	ObjectorContact  *string `json:"objector_contact"`
	ObjectionContent string  `json:"objection_content" binding:"required"`
}

// SubmitObjection files a public objection against an announcement. The
// announcement's status and window are not checked: objections against a
// withdrawn or closed announcement still record. The objection is advisory;
// nothing else in the system changes.
func SubmitObjection(c *gin.Context) {
	id := c.Param("id")

	var announcement models.Announcement
	if err := config.DB.First(&announcement, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var req ObjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	objection := models.Objection{
		AnnouncementID:   announcement.ID,
		ApplicationID:    req.ApplicationID,
		ObjectorName:     req.ObjectorName,
		ObjectorContact:  req.ObjectorContact,
		ObjectionContent: req.ObjectionContent,
		Status:           "pending",
	}

	if err := config.DB.Create(&objection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit objection"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"objection": objection, "message": "Objection submitted successfully"})
}

// GetObjections lists objections for staff triage.
func GetObjections(c *gin.Context) {
	query := config.DB.Model(&models.Objection{})

	if announcementID := c.Query("announcement_id"); announcementID != "" {
		query = query.Where("announcement_id = ?", announcementID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var objections []models.Objection
	if err := query.Order("created_at DESC").Find(&objections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch objections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"objections": objections, "total": len(objections)})
}

// ResolveObjection records the staff response on an objection.
func ResolveObjection(c *gin.Context) {
	id := c.Param("id")

	var objection models.Objection
	if err := config.DB.First(&objection, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Objection not found"})
		return
	}

	type ObjectionResolveRequest struct {
		Response *string `json:"response"`
		Status   *string `json:"status"`
	}

	var req ObjectionResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Response != nil {
		objection.Response = req.Response
	}
	if req.Status != nil {
		objection.Status = *req.Status
	}

	now := time.Now()
	objection.UpdatedAt = &now

	if err := config.DB.Save(&objection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update objection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"objection": objection, "message": "Objection updated successfully"})
}
