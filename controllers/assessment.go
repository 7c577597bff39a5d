package controllers

import (
	"net/http"

	"vendor-vetting-api/config"
	"vendor-vetting-api/models"
	"vendor-vetting-api/services"

	"github.com/gin-gonic/gin"
)

// GetQuestionCatalog returns the fixed vetting questionnaire.
func GetQuestionCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "catalog": services.Catalog()})
}

// GetAssessments lists assessments with optional vendor/status/verdict
// filters, enriched with vendor and product records.
func GetAssessments(c *gin.Context) {
	filter := services.AssessmentFilter{
		VendorID: c.Query("vendor_id"),
		Status:   models.AssessmentStatus(c.Query("status")),
		Verdict:  models.Verdict(c.Query("verdict")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}
	if filter.Verdict != "" && !filter.Verdict.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verdict filter"})
		return
	}

	store := services.NewGormAssessmentStore(config.DB)
	assessments, err := store.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessments"})
		return
	}

	for i := range assessments {
		enrichAssessment(&assessments[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assessments": assessments,
		"total":       len(assessments),
	})
}

// GetAssessment returns one assessment by id.
func GetAssessment(c *gin.Context) {
	store := services.NewGormAssessmentStore(config.DB)
	assessment, err := store.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessment"})
		return
	}
	if assessment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}

	enrichAssessment(assessment)
	c.JSON(http.StatusOK, gin.H{"success": true, "assessment": assessment})
}

// CreateAssessment starts a new vetting workflow for a vendor.
func CreateAssessment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	assessment, err := workflowService().Create(req, userID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	enrichAssessment(assessment)
	c.JSON(http.StatusCreated, gin.H{"success": true, "assessment": assessment})
}

// UpdateAssessment merges an edit into an open assessment; derived scores
// are recomputed by the workflow when answers change.
func UpdateAssessment(c *gin.Context) {
	var req services.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	assessment, err := workflowService().SaveAnswers(c.Param("id"), req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	enrichAssessment(assessment)
	c.JSON(http.StatusOK, gin.H{"success": true, "assessment": assessment})
}
