package controllers

import (
	"net/http"

	"award-management-api/config"
	"award-management-api/models"
	"award-management-api/utils"

	"github.com/gin-gonic/gin"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func applicationsByStatus() (map[string]int64, error) {
	var rows []statusCount
	err := config.DB.Model(&models.Application{}).
		Select("submission_status AS status, COUNT(*) AS count").
		Group("submission_status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}
	return byStatus, nil
}

func collectOverview() (utils.StatisticsExport, error) {
	var stats utils.StatisticsExport

	if err := config.DB.Model(&models.Application{}).Count(&stats.TotalApplications).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Organization{}).Count(&stats.TotalOrganizations).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.User{}).
		Where("role = ?", models.RoleExpert).Count(&stats.TotalExperts).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Review{}).Count(&stats.TotalReviews).Error; err != nil {
		return stats, err
	}

	byStatus, err := applicationsByStatus()
	if err != nil {
		return stats, err
	}
	stats.ApplicationByStatus = byStatus
	return stats, nil
}

func applicationsByOrgType() (map[string]int64, error) {
	type orgTypeCount struct {
		OrgType string `json:"org_type"`
		Count   int64  `json:"count"`
	}

	var rows []orgTypeCount
	err := config.DB.Model(&models.Application{}).
		Select("organizations.org_type AS org_type, COUNT(applications.id) AS count").
		Joins("JOIN organizations ON organizations.id = applications.applicant_unit_id").
		Group("organizations.org_type").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int64, len(rows))
	for _, row := range rows {
		byType[row.OrgType] = row.Count
	}
	return byType, nil
}

// GetStatisticsOverview returns system-wide counters.
func GetStatisticsOverview(c *gin.Context) {
	stats, err := collectOverview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect statistics"})
		return
	}

	byOrgType, err := applicationsByOrgType()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_applications":    stats.TotalApplications,
		"total_organizations":   stats.TotalOrganizations,
		"total_experts":         stats.TotalExperts,
		"total_reviews":         stats.TotalReviews,
		"application_by_status": stats.ApplicationByStatus,
		"application_by_org":    byOrgType,
	})
}

// GetStatisticsByStatus returns the application count per lifecycle status.
func GetStatisticsByStatus(c *gin.Context) {
	byStatus, err := applicationsByStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"by_status": byStatus})
}

// GetStatisticsByYear returns the application count per award year.
func GetStatisticsByYear(c *gin.Context) {
	type yearCount struct {
		Year  int   `json:"year"`
		Count int64 `json:"count"`
	}

	var rows []yearCount
	err := config.DB.Model(&models.Application{}).
		Select("awards.year AS year, COUNT(applications.id) AS count").
		Joins("JOIN award_cycles ON award_cycles.id = applications.award_cycle_id").
		Joins("JOIN awards ON awards.id = award_cycles.award_id").
		Group("awards.year").Order("awards.year").Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"by_year": rows})
}

// ExportApplications streams the application list as an Excel workbook.
func ExportApplications(c *gin.Context) {
	var applications []models.Application
	query := config.DB.Preload("ApplicantUnit").Order("created_at DESC")
	if status := c.Query("status"); status != "" && models.ValidApplicationStatus(status) {
		query = query.Where("submission_status = ?", status)
	}
	if err := query.Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	rows := make([]utils.ApplicationExportRow, 0, len(applications))
	for _, app := range applications {
		row := utils.ApplicationExportRow{
			Title:  app.Title,
			Status: string(app.Status),
		}
		if app.ApplicantUnit != nil {
			row.UnitName = app.ApplicantUnit.Name
		}
		if app.LeaderName != nil {
			row.LeaderName = *app.LeaderName
		}
		if app.SubmissionTime != nil {
			row.SubmissionTime = app.SubmissionTime.Format("2006-01-02 15:04")
		}
		if app.CurrentStage != nil {
			row.CurrentStage = *app.CurrentStage
		}
		if app.ScoreSummary != nil {
			avg := app.ScoreSummary.AverageScore
			row.AverageScore = &avg
		}
		if app.FinalResult != nil {
			row.FinalResult = *app.FinalResult
		}
		rows = append(rows, row)
	}

	f, err := utils.ExportApplicationsToExcel(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	c.Header("Content-Type", excelContentType)
	c.Header("Content-Disposition", `attachment; filename="applications.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write export"})
	}
}

// ExportStatistics streams the statistics workbook.
func ExportStatistics(c *gin.Context) {
	stats, err := collectOverview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect statistics"})
		return
	}

	f, err := utils.ExportStatisticsToExcel(stats)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	c.Header("Content-Type", excelContentType)
	c.Header("Content-Disposition", `attachment; filename="statistics.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write export"})
	}
}
