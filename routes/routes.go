package routes

import (
	"vendor-vetting-api/controllers"
	"vendor-vetting-api/middleware"
	"vendor-vetting-api/models"

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
					"message": "Vendor Vetting API is running",
				})
			})

			// Vendor self-service questionnaire (the token is the credential)
			publicAssessment := public.Group("/public/assessment")
			{
				publicAssessment.GET("/:token", controllers.GetPublicAssessment)
				publicAssessment.PUT("/:token", controllers.SavePublicAnswers)
				publicAssessment.POST("/:token/submit", controllers.SubmitPublicAssessment)
			}
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)

			// Question catalog
			protected.GET("/questions", controllers.GetQuestionCatalog)

			// Vendors
			vendors := protected.Group("/vendors")
			{
				vendors.GET("", controllers.GetVendors)
				vendors.GET("/:id", controllers.GetVendor)
				vendors.POST("", controllers.CreateVendor)
				vendors.PUT("/:id", controllers.UpdateVendor)
				vendors.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteVendor)

				vendors.GET("/:id/products", controllers.GetProducts)
				vendors.POST("/:id/products", controllers.CreateProduct)
			}

			// Assessments
			assessments := protected.Group("/assessments")
			{
				assessments.GET("", controllers.GetAssessments)
				assessments.GET("/:id", controllers.GetAssessment)
				assessments.POST("", controllers.CreateAssessment)
				assessments.PUT("/:id", controllers.UpdateAssessment)
				assessments.POST("/:id/submit", controllers.SubmitAssessment)
				assessments.POST("/compare", controllers.CompareAssessments)

				// Only reviewers and admins decide outcomes
				assessments.POST("/:id/approve",
					middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.ApproveAssessment)
				assessments.POST("/:id/reject",
					middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.RejectAssessment)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}
		}
	}
}
