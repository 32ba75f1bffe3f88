package controllers

import (
	"net/http"
	"strconv"
	"time"

	"award-management-api/config"
	"award-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetUsers lists users with optional role/name/organization filters.
func GetUsers(c *gin.Context) {
	query := config.DB.Model(&models.User{}).Preload("Organization")

	if role := c.Query("role"); role != "" {
		if !models.ValidRole(role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		query = query.Where("role = ?", role)
	}
	if username := c.Query("username"); username != "" {
		query = query.Where("username LIKE ?", "%"+username+"%")
	}
	if realName := c.Query("real_name"); realName != "" {
		query = query.Where("real_name LIKE ?", "%"+realName+"%")
	}
	if orgID := c.Query("organization_id"); orgID != "" {
		query = query.Where("organization_id = ?", orgID)
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var users []models.User
	if err := query.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// GetUser returns a single user by ID.
func GetUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.Preload("Organization").First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UserCreateRequest struct {
	Username       string  `json:"username" binding:"required"`
	Password       string  `json:"password" binding:"required,min=6"`
	RealName       string  `json:"real_name" binding:"required"`
	Email          *string `json:"email"`
	Mobile         *string `json:"mobile"`
	Role           string  `json:"role" binding:"required"`
	OrganizationID *int    `json:"organization_id"`
}

// CreateUser registers a new account. Duplicate username or email is
// rejected before anything is written.
func CreateUser(c *gin.Context) {
	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	// Duplicate checks first so a conflict never half-creates a row
	var count int64
	config.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}
	if req.Email != nil && *req.Email != "" {
		config.DB.Model(&models.User{}).Where("email = ?", *req.Email).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:       req.Username,
		PasswordHash:   hash,
		RealName:       req.RealName,
		Email:          req.Email,
		Mobile:         req.Mobile,
		Role:           models.UserRole(req.Role),
		OrganizationID: req.OrganizationID,
		IsActive:       true,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "message": "User created successfully"})
}

type UserUpdateRequest struct {
	RealName       *string `json:"real_name"`
	Email          *string `json:"email"`
	Mobile         *string `json:"mobile"`
	Role           *string `json:"role"`
	OrganizationID *int    `json:"organization_id"`
	IsActive       *bool   `json:"is_active"`
}

// UpdateUser edits profile fields. Username and password never change here.
func UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		user.Role = models.UserRole(*req.Role)
	}
	if req.RealName != nil {
		user.RealName = *req.RealName
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Mobile != nil {
		user.Mobile = req.Mobile
	}
	if req.OrganizationID != nil {
		user.OrganizationID = req.OrganizationID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	now := time.Now()
	user.UpdatedAt = &now

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "message": "User updated successfully"})
}

// DeleteUser deactivates an account instead of removing the row, so
// historical uploads and reviews keep their author reference.
func DeleteUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	user.IsActive = false
	user.UpdatedAt = &now

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deactivated successfully"})
}
