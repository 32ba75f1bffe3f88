package routes

import (
	"award-management-api/controllers"
	"award-management-api/middleware"
	"award-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Award Management API is running",
				})
			})

			// Published results and objections
			public.GET("/announcements", controllers.GetAnnouncements)
			public.GET("/announcements/:id", controllers.GetAnnouncement)
			public.POST("/announcements/:id/objections", controllers.SubmitObjection)

			// Blank application workbook
			public.GET("/files/template", controllers.DownloadApplicationTemplate)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/logout", controllers.Logout)
			protected.GET("/me", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// User directory (staff only)
			users := protected.Group("/users", middleware.RequireRole(models.RoleAdmin, models.RoleStaff))
			{
				users.GET("", controllers.GetUsers)
				users.GET("/:id", controllers.GetUser)
				users.POST("", controllers.CreateUser)
				users.PUT("/:id", controllers.UpdateUser)
				users.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteUser)
			}

			// Organizations
			organizations := protected.Group("/organizations")
			{
				organizations.GET("", controllers.GetOrganizations)
				organizations.GET("/:id", controllers.GetOrganization)
				organizations.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.CreateOrganization)
				organizations.PUT("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.UpdateOrganization)
				organizations.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteOrganization)
			}

			// Award catalog
			awards := protected.Group("/awards")
			{
				awards.GET("", controllers.GetAwards)
				awards.GET("/:id", controllers.GetAward)
				awards.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.CreateAward)
				awards.PUT("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.UpdateAward)
			}

			cycles := protected.Group("/award-cycles")
			{
				cycles.GET("", controllers.GetAwardCycles)
				cycles.GET("/:id", controllers.GetAwardCycle)
				cycles.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.CreateAwardCycle)
			}

			// Applications
			applications := protected.Group("/applications")
			{
				applications.GET("", controllers.GetApplications)
				applications.GET("/:id", controllers.GetApplication)
				applications.POST("", controllers.CreateApplication)
				applications.PUT("/:id", controllers.UpdateApplication)
				applications.DELETE("/:id", controllers.DeleteApplication)
				applications.POST("/:id/submit", controllers.SubmitApplication)

				// Staff and committee drive the lifecycle
				applications.PUT("/:id/status",
					middleware.RequireRole(models.RoleAdmin, models.RoleStaff, models.RoleCommittee),
					controllers.UpdateApplicationStatus)

				applications.POST("/:id/attachments", controllers.UploadAttachment)
				applications.GET("/:id/attachments", controllers.GetAttachments)
			}

			// Expert reviews
			reviews := protected.Group("/reviews")
			{
				reviews.GET("/my", middleware.RequireRole(models.RoleExpert), controllers.GetMyReviews)
				reviews.GET("/application/:id", controllers.GetApplicationReviews)
				reviews.GET("/score-summary/:id", controllers.GetScoreSummary)
				reviews.POST("", middleware.RequireRole(models.RoleExpert), controllers.CreateReview)
				reviews.PUT("/:id", middleware.RequireRole(models.RoleExpert), controllers.UpdateReview)
				reviews.PUT("/:id/submit", middleware.RequireRole(models.RoleExpert), controllers.SubmitReview)
				reviews.POST("/assign", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.AssignExpert)
			}

			// Committee decisions
			committee := protected.Group("/committee")
			{
				committee.GET("/decisions", middleware.RequireRole(models.RoleAdmin, models.RoleStaff, models.RoleCommittee), controllers.GetDecisions)
				committee.GET("/decisions/:id", middleware.RequireRole(models.RoleAdmin, models.RoleStaff, models.RoleCommittee), controllers.GetDecision)
				committee.POST("/decisions", middleware.RequireRole(models.RoleAdmin, models.RoleCommittee), controllers.CreateDecision)
				committee.PUT("/decisions/:id", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.UpdateDecision)
				committee.DELETE("/decisions/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteDecision)
				committee.GET("/applications/:id/decisions", controllers.GetApplicationDecisions)
			}

			// Announcement management
			protected.POST("/announcements", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.CreateAnnouncement)
			protected.PUT("/announcements/:id", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.UpdateAnnouncement)
			protected.GET("/objections", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.GetObjections)
			protected.PUT("/objections/:id", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.ResolveObjection)

			// Files
			files := protected.Group("/files")
			{
				files.POST("/upload", controllers.UploadFile)
				files.GET("/attachments/:id/download", controllers.DownloadAttachment)
			}

			// Statistics
			statistics := protected.Group("/statistics")
			{
				statistics.GET("/overview", controllers.GetStatisticsOverview)
				statistics.GET("/by-status", controllers.GetStatisticsByStatus)
				statistics.GET("/by-year", controllers.GetStatisticsByYear)
				statistics.GET("/export", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.ExportApplications)
				statistics.GET("/export-overview", middleware.RequireRole(models.RoleAdmin, models.RoleStaff), controllers.ExportStatistics)
			}
		}
	}
}
