package controllers

import (
	"net/http"

	"vendor-vetting-api/services"

	"github.com/gin-gonic/gin"
)

// SubmitAssessment moves a draft or in-review assessment to awaiting
// approval. All questions must be answered and every "yes" evidenced.
func SubmitAssessment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	assessment, err := workflowService().SubmitForReview(c.Param("id"), userID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	enrichAssessment(assessment)
	c.JSON(http.StatusOK, gin.H{"success": true, "assessment": assessment})
}

// ApproveAssessment completes an assessment awaiting approval. The reviewer
// may ratify the computed verdict or override it with a written
// justification.
func ApproveAssessment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	assessment, err := workflowService().Approve(c.Param("id"), userID, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	enrichAssessment(assessment)
	c.JSON(http.StatusOK, gin.H{"success": true, "assessment": assessment})
}

// RejectAssessment completes an assessment awaiting approval with a forced
// Rejected verdict.
func RejectAssessment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		VerdictNotes string `json:"verdict_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	assessment, err := workflowService().Reject(c.Param("id"), userID, req.VerdictNotes)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	enrichAssessment(assessment)
	c.JSON(http.StatusOK, gin.H{"success": true, "assessment": assessment})
}
