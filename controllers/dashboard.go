package controllers

import (
	"net/http"

	"vendor-vetting-api/config"
	"vendor-vetting-api/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns registry stats plus the assessment pipeline
// breakdown by status and verdict.
func GetDashboardStats(c *gin.Context) {
	stats, err := vendorRegistryStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute registry stats"})
		return
	}

	type statusCount struct {
		Status models.AssessmentStatus `json:"status"`
		Count  int64                   `json:"count"`
	}
	var byStatus []statusCount
	if err := config.DB.Model(&models.Assessment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute status breakdown"})
		return
	}

	type verdictCount struct {
		Verdict models.Verdict `json:"verdict"`
		Count   int64          `json:"count"`
	}
	var byVerdict []verdictCount
	if err := config.DB.Model(&models.Assessment{}).
		Where("status = ?", models.StatusComplete).
		Select("verdict, COUNT(*) as count").
		Group("verdict").
		Scan(&byVerdict).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute verdict breakdown"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"stats":      stats,
		"by_status":  byStatus,
		"by_verdict": byVerdict,
	})
}
