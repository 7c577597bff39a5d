package controllers

import (
	"net/http"
	"sync"

	"vendor-vetting-api/config"
	"vendor-vetting-api/models"
	"vendor-vetting-api/services"

	"github.com/gin-gonic/gin"
)

var (
	workflowOnce sync.Once
	workflow     *services.AssessmentService
)

// workflowService returns the shared assessment workflow. A single instance
// is required so per-assessment locks are shared across requests.
func workflowService() *services.AssessmentService {
	workflowOnce.Do(func() {
		workflow = services.NewAssessmentService(
			services.NewGormAssessmentStore(config.DB),
			services.NewGormVendorStore(config.DB),
		)
	})
	return workflow
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

// respondWorkflowError translates a workflow failure into an HTTP response.
func respondWorkflowError(c *gin.Context, err error) {
	wfErr, ok := services.AsWorkflowError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := http.StatusBadRequest
	switch wfErr.Kind {
	case services.ErrNotFound:
		status = http.StatusNotFound
	case services.ErrTokenExpired:
		status = http.StatusGone
	case services.ErrConcurrentModification:
		status = http.StatusConflict
	}

	body := gin.H{"error": wfErr.Message, "kind": string(wfErr.Kind)}
	if len(wfErr.MissingEvidence) > 0 {
		body["missing_evidence"] = wfErr.MissingEvidence
	}
	c.JSON(status, body)
}

// enrichAssessment loads the vendor and product records referenced by the
// assessment. Lookup failures leave the relations nil rather than failing
// the request.
func enrichAssessment(assessment *models.Assessment) {
	if assessment == nil {
		return
	}

	vendors := services.NewGormVendorStore(config.DB)
	vendor, err := vendors.GetByID(assessment.VendorID)
	if err != nil || vendor == nil {
		return
	}
	assessment.Vendor = vendor

	if assessment.ProductID != nil {
		assessment.Product = vendor.ProductByID(*assessment.ProductID)
	}
}
