package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"award-management-api/config"
	"award-management-api/middleware"
	"award-management-api/models"
	"award-management-api/services"
	"award-management-api/utils"

	"github.com/gin-gonic/gin"
)

// GetApplications lists applications. Applicants only ever see their own
// unit's rows regardless of the filters they pass.
func GetApplications(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	cycleID, _ := strconv.Atoi(c.Query("award_cycle_id"))
	unitID, _ := strconv.Atoi(c.Query("applicant_unit_id"))

	filter := services.ApplicationFilter{
		AwardCycleID:    cycleID,
		ApplicantUnitID: unitID,
		Status:          c.Query("status"),
		Title:           c.Query("title"),
		Skip:            skip,
		Limit:           limit,
	}

	if principal.Role == models.RoleApplicant {
		if principal.OrganizationID == nil {
			c.JSON(http.StatusOK, gin.H{"applications": []models.Application{}, "total": 0})
			return
		}
		filter.ApplicantUnitID = *principal.OrganizationID
	}

	svc := services.NewApplicationService(config.DB)
	applications, err := svc.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications, "total": len(applications)})
}

// GetApplication returns one application with its cycle and unit.
func GetApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	svc := services.NewApplicationService(config.DB)
	application, err := svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	principal := middleware.CurrentPrincipal(c)
	if !services.CanViewApplication(principal, application) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

type ApplicationRequest struct {
	AwardCycleID    int     `json:"award_cycle_id" binding:"required"`
	ApplicantUnitID int     `json:"applicant_unit_id"`
	Title           *string `json:"title"`
	Category        *string `json:"category"`
	LeaderName      *string `json:"leader_name"`
	LeaderTitle     *string `json:"leader_title"`
	TeamMembers     *string `json:"team_members"`
	Summary         *string `json:"summary"`
	TechnicalDetail *string `json:"technical_details"`
	InnovationPoint *string `json:"innovation_points"`
	ApplicationVal  *string `json:"application_value"`
	EconomicBenefit *string `json:"economic_benefit"`
	SocialBenefit   *string `json:"social_benefit"`
	FinalResult     *string `json:"final_result"`
}

func (r *ApplicationRequest) content() services.ApplicationContent {
	return services.ApplicationContent{
		Title:           r.Title,
		Category:        r.Category,
		LeaderName:      r.LeaderName,
		LeaderTitle:     r.LeaderTitle,
		TeamMembers:     r.TeamMembers,
		Summary:         r.Summary,
		TechnicalDetail: r.TechnicalDetail,
		InnovationPoint: r.InnovationPoint,
		ApplicationVal:  r.ApplicationVal,
		EconomicBenefit: r.EconomicBenefit,
		SocialBenefit:   r.SocialBenefit,
		FinalResult:     r.FinalResult,
	}
}

// CreateApplication opens a draft for the caller's unit.
func CreateApplication(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := middleware.CurrentPrincipal(c)
	unitID := req.ApplicantUnitID
	if unitID == 0 {
		if principal.OrganizationID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "applicant_unit_id is required"})
			return
		}
		unitID = *principal.OrganizationID
	}

	svc := services.NewApplicationService(config.DB)
	application, err := svc.Create(req.AwardCycleID, unitID, req.content(), principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"application": application, "message": "Application created successfully"})
}

// UpdateApplication edits the project content of a draft.
func UpdateApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	type ApplicationUpdateRequest struct {
		Title           *string `json:"title"`
		Category        *string `json:"category"`
		LeaderName      *string `json:"leader_name"`
		LeaderTitle     *string `json:"leader_title"`
		TeamMembers     *string `json:"team_members"`
		Summary         *string `json:"summary"`
		TechnicalDetail *string `json:"technical_details"`
		InnovationPoint *string `json:"innovation_points"`
		ApplicationVal  *string `json:"application_value"`
		EconomicBenefit *string `json:"economic_benefit"`
		SocialBenefit   *string `json:"social_benefit"`
		FinalResult     *string `json:"final_result"`
	}

	var req ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := services.ApplicationContent{
		Title:           req.Title,
		Category:        req.Category,
		LeaderName:      req.LeaderName,
		LeaderTitle:     req.LeaderTitle,
		TeamMembers:     req.TeamMembers,
		Summary:         req.Summary,
		TechnicalDetail: req.TechnicalDetail,
		InnovationPoint: req.InnovationPoint,
		ApplicationVal:  req.ApplicationVal,
		EconomicBenefit: req.EconomicBenefit,
		SocialBenefit:   req.SocialBenefit,
		FinalResult:     req.FinalResult,
	}

	svc := services.NewApplicationService(config.DB)
	application, err := svc.UpdateContent(id, content, middleware.CurrentPrincipal(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application, "message": "Application updated successfully"})
}

// SubmitApplication moves a draft into the review pipeline.
func SubmitApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	svc := services.NewApplicationService(config.DB)
	application, err := svc.Submit(id, middleware.CurrentPrincipal(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application, "message": "Application submitted successfully"})
}

// UpdateApplicationStatus is the staff/committee transition endpoint.
func UpdateApplicationStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	type StatusUpdateRequest struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewApplicationService(config.DB)
	application, err := svc.UpdateStatus(id, models.ApplicationStatus(req.Status), req.Note, middleware.CurrentPrincipal(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
		"note":        req.Note,
		"message":     "Application status updated successfully",
	})
}

// DeleteApplication removes a draft and its dependent rows.
func DeleteApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	svc := services.NewApplicationService(config.DB)
	if err := svc.Delete(id, middleware.CurrentPrincipal(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// UploadAttachment stores an uploaded file and records it against the
// application. Uploads are accepted in every lifecycle status.
func UploadAttachment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	storedPath, storedName, size, err := utils.SaveUploadFile(file, fmt.Sprintf("applications/%d", id))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var description *string
	if d := c.PostForm("description"); d != "" {
		description = &d
	}

	principal := middleware.CurrentPrincipal(c)
	svc := services.NewApplicationService(config.DB)
	attachment, err := svc.AddAttachment(id, file.Filename, storedPath, utils.FileExtension(storedName), size, description, principal.UserID)
	if err != nil {
		// Roll the stored file back so validation failures leave nothing behind
		utils.DeleteFile(storedPath)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attachment": attachment, "message": "File uploaded successfully"})
}

// GetAttachments lists the attachments of one application.
func GetAttachments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	svc := services.NewApplicationService(config.DB)
	application, err := svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	principal := middleware.CurrentPrincipal(c)
	if !services.CanViewApplication(principal, application) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this application"})
		return
	}

	attachments, err := svc.Attachments(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attachments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attachments": attachments, "total": len(attachments)})
}
