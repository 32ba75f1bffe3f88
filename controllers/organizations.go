package controllers

import (
	"net/http"
	"strconv"
	"time"

	"award-management-api/config"
	"award-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetOrganizations lists organizations with optional type/name filters.
func GetOrganizations(c *gin.Context) {
	query := config.DB.Model(&models.Organization{})

	if orgType := c.Query("org_type"); orgType != "" {
		if !models.ValidOrgType(orgType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization type"})
			return
		}
		query = query.Where("org_type = ?", orgType)
	}
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var organizations []models.Organization
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&organizations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch organizations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": organizations, "total": len(organizations)})
}

// GetOrganization returns a single organization by ID.
func GetOrganization(c *gin.Context) {
	id := c.Param("id")

	var organization models.Organization
	if err := config.DB.First(&organization, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": organization})
}

type OrganizationRequest struct {
	Name          string  `json:"name" binding:"required"`
	Code          *string `json:"code"`
	OrgType       string  `json:"org_type"`
	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	Description   *string `json:"description"`
}

// CreateOrganization registers a new unit.
func CreateOrganization(c *gin.Context) {
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.OrgType == "" {
		req.OrgType = string(models.OrgEnterprise)
	}
	if !models.ValidOrgType(req.OrgType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization type"})
		return
	}

	var count int64
	config.DB.Model(&models.Organization{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organization name already exists"})
		return
	}

	organization := models.Organization{
		Name:          req.Name,
		Code:          req.Code,
		OrgType:       models.OrgType(req.OrgType),
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		Email:         req.Email,
		Address:       req.Address,
		Description:   req.Description,
	}

	if err := config.DB.Create(&organization).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"organization": organization, "message": "Organization created successfully"})
}

// UpdateOrganization edits unit fields.
func UpdateOrganization(c *gin.Context) {
	id := c.Param("id")

	var organization models.Organization
	if err := config.DB.First(&organization, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	type OrganizationUpdateRequest struct {
		Name          *string `json:"name"`
		Code          *string `json:"code"`
		OrgType       *string `json:"org_type"`
		ContactPerson *string `json:"contact_person"`
		ContactPhone  *string `json:"contact_phone"`
		Email         *string `json:"email"`
		Address       *string `json:"address"`
		Description   *string `json:"description"`
	}

	var req OrganizationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.OrgType != nil {
		if !models.ValidOrgType(*req.OrgType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization type"})
			return
		}
		organization.OrgType = models.OrgType(*req.OrgType)
	}
	if req.Name != nil {
		organization.Name = *req.Name
	}
	if req.Code != nil {
		organization.Code = req.Code
	}
	if req.ContactPerson != nil {
		organization.ContactPerson = req.ContactPerson
	}
	if req.ContactPhone != nil {
		organization.ContactPhone = req.ContactPhone
	}
	if req.Email != nil {
		organization.Email = req.Email
	}
	if req.Address != nil {
		organization.Address = req.Address
	}
	if req.Description != nil {
		organization.Description = req.Description
	}

	now := time.Now()
	organization.UpdatedAt = &now

	if err := config.DB.Save(&organization).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update organization"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": organization, "message": "Organization updated successfully"})
}

// DeleteOrganization removes a unit. Applications keep their unit ID; the
// reference is advisory and never cascades.
func DeleteOrganization(c *gin.Context) {
	id := c.Param("id")

	var organization models.Organization
	if err := config.DB.First(&organization, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	if err := config.DB.Delete(&organization).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete organization"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organization deleted successfully"})
}
