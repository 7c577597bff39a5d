package main

import (
	"log"
	"os"
	"time"

	"vendor-vetting-api/config"
	"vendor-vetting-api/middleware"
	"vendor-vetting-api/routes"
	"vendor-vetting-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize logging and database
	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}
	config.InitDB()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Setup routes
	routes.SetupRoutes(router)

	// Periodic sweep: expire lapsed vendor tokens and stale approvals
	startExpirySweep()

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func startExpirySweep() {
	sweep := services.NewAssessmentService(
		services.NewGormAssessmentStore(config.DB),
		services.NewGormVendorStore(config.DB),
	)

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			expired, err := sweep.ExpireOverdueAssessments()
			if err != nil {
				log.Printf("Expiry sweep failed: %v", err)
				continue
			}
			if expired > 0 {
				log.Printf("Expiry sweep marked %d assessment(s) as expired", expired)
			}
		}
	}()
}
