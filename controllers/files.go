package controllers

import (
	"net/http"
	"os"

	"award-management-api/config"
	"award-management-api/models"
	"award-management-api/utils"

	"github.com/gin-gonic/gin"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UploadFile stores a file without binding it to an application. Used for
// supporting material referenced by ID from free-text fields.
func UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	subdir := c.DefaultPostForm("category", "general")

	storedPath, storedName, size, err := utils.SaveUploadFile(file, subdir)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"filename":          storedName,
		"original_filename": file.Filename,
		"filepath":          storedPath,
		"file_size":         size,
		"message":           "File uploaded successfully",
	})
}

// DownloadAttachment streams a stored attachment under its original name.
func DownloadAttachment(c *gin.Context) {
	id := c.Param("id")

	var attachment models.Attachment
	if err := config.DB.First(&attachment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}

	if _, err := os.Stat(attachment.Filepath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file is missing"})
		return
	}

	c.FileAttachment(attachment.Filepath, attachment.Filename)
}

// DownloadApplicationTemplate serves the blank application workbook.
func DownloadApplicationTemplate(c *gin.Context) {
	f, err := utils.NewApplicationTemplate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build template"})
		return
	}

	c.Header("Content-Type", excelContentType)
	c.Header("Content-Disposition", `attachment; filename="application_template.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write template"})
	}
}
