package controllers

import (
	"net/http"

	"vendor-vetting-api/config"
	"vendor-vetting-api/models"
	"vendor-vetting-api/services"

	"github.com/gin-gonic/gin"
)

// publicAssessmentView is the limited shape exposed to vendors through the
// self-service token. Verdict, scores and reviewer fields stay internal.
type publicAssessmentView struct {
	AssessmentID       string                 `json:"assessment_id"`
	VendorName         string                 `json:"vendor_name"`
	ProductName        *string                `json:"product_name,omitempty"`
	AssessmentType     models.AssessmentType  `json:"assessment_type"`
	RequestedBy        string                 `json:"requested_by"`
	RequestReason      string                 `json:"request_reason"`
	ComplianceAnswers  models.CategoryAnswers `json:"compliance_answers"`
	SecurityAnswers    models.CategoryAnswers `json:"security_answers"`
	OperationalAnswers models.CategoryAnswers `json:"operational_answers"`
	TrustAnswers       models.CategoryAnswers `json:"trust_answers"`
}

// GetPublicAssessment returns the questionnaire state for a vendor token.
func GetPublicAssessment(c *gin.Context) {
	assessment, err := workflowService().GetByToken(c.Param("token"))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	view := publicAssessmentView{
		AssessmentID:       assessment.AssessmentID,
		AssessmentType:     assessment.AssessmentType,
		RequestedBy:        assessment.RequestedBy,
		RequestReason:      assessment.RequestReason,
		ComplianceAnswers:  assessment.ComplianceAnswers,
		SecurityAnswers:    assessment.SecurityAnswers,
		OperationalAnswers: assessment.OperationalAnswers,
		TrustAnswers:       assessment.TrustAnswers,
	}

	var vendor models.Vendor
	if err := config.DB.Preload("Products").
		Where("vendor_id = ?", assessment.VendorID).
		First(&vendor).Error; err == nil {
		view.VendorName = vendor.Name
		if assessment.ProductID != nil {
			if product := vendor.ProductByID(*assessment.ProductID); product != nil {
				view.ProductName = &product.Name
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assessment": view,
		"catalog":    services.Catalog(),
	})
}

// SavePublicAnswers auto-saves the vendor's answer maps.
func SavePublicAnswers(c *gin.Context) {
	var req services.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	assessment, err := workflowService().SaveAnswersByToken(c.Param("token"), req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"compliance_answers":  assessment.ComplianceAnswers,
		"security_answers":    assessment.SecurityAnswers,
		"operational_answers": assessment.OperationalAnswers,
		"trust_answers":       assessment.TrustAnswers,
	})
}

// SubmitPublicAssessment finalizes the vendor's questionnaire. The token can
// never submit or write again afterwards.
func SubmitPublicAssessment(c *gin.Context) {
	assessment, err := workflowService().VendorSubmit(c.Param("token"))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Thank you for completing the assessment. The internal team will review your submission.",
		"submitted_at": assessment.VendorSubmittedAt,
		"status":       assessment.Status,
	})
}
