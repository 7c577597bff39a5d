package controllers

import (
	"net/http"
	"time"

	"vendor-vetting-api/config"
	"vendor-vetting-api/models"

	"github.com/gin-gonic/gin"
)

const (
	compareMin = 2
	compareMax = 5
)

// CompareAssessments returns 2-5 enriched assessments side by side.
func CompareAssessments(c *gin.Context) {
	var req struct {
		AssessmentIDs []string `json:"assessment_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assessment IDs array is required"})
		return
	}

	if len(req.AssessmentIDs) < compareMin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least 2 assessments are required for comparison"})
		return
	}
	if len(req.AssessmentIDs) > compareMax {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 5 assessments can be compared at once"})
		return
	}

	assessments := make([]models.Assessment, 0, len(req.AssessmentIDs))
	for _, id := range req.AssessmentIDs {
		var assessment models.Assessment
		if err := config.DB.Where("assessment_id = ?", id).First(&assessment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "One or more assessments not found"})
			return
		}
		enrichAssessment(&assessment)
		assessments = append(assessments, assessment)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"assessments":          assessments,
		"comparison_generated": time.Now(),
	})
}
