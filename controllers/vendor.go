package controllers

import (
	"net/http"
	"strings"
	"time"

	"vendor-vetting-api/config"
	"vendor-vetting-api/models"
	"vendor-vetting-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetVendors lists all vendors, optionally with registry stats.
func GetVendors(c *gin.Context) {
	var vendors []models.Vendor
	if err := config.DB.Preload("Products").
		Where("deleted_at IS NULL").
		Order("name ASC").
		Find(&vendors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendors"})
		return
	}

	response := gin.H{
		"success": true,
		"vendors": vendors,
		"total":   len(vendors),
	}

	if c.Query("include_stats") == "true" {
		stats, err := vendorRegistryStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute registry stats"})
			return
		}
		response["stats"] = stats
	}

	c.JSON(http.StatusOK, response)
}

// GetVendor returns one vendor with its products.
func GetVendor(c *gin.Context) {
	var vendor models.Vendor
	if err := config.DB.Preload("Products").
		Where("vendor_id = ? AND deleted_at IS NULL", c.Param("id")).
		First(&vendor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "vendor": vendor})
}

type vendorRequest struct {
	Name         string  `json:"name" binding:"required"`
	Website      string  `json:"website" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
}

// CreateVendor registers a new AI vendor.
func CreateVendor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	name := utils.SanitizeInput(req.Name)
	if len(name) < 2 || len(name) > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vendor name must be between 2 and 100 characters"})
		return
	}
	if !utils.ValidateURL(req.Website) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid website URL is required"})
		return
	}
	if req.ContactEmail != nil && *req.ContactEmail != "" && !utils.ValidateEmail(*req.ContactEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact email"})
		return
	}

	// Vendor names are unique, case-insensitively
	var existing int64
	if err := config.DB.Model(&models.Vendor{}).
		Where("LOWER(name) = ? AND deleted_at IS NULL", strings.ToLower(name)).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check vendor name"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A vendor with this name already exists"})
		return
	}

	now := time.Now()
	vendor := models.Vendor{
		VendorID:     uuid.NewString(),
		Name:         name,
		Website:      utils.SanitizeURL(req.Website),
		Description:  req.Description,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		CreatedByID:  userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := config.DB.Create(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vendor"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "vendor": vendor})
}

// UpdateVendor edits a vendor's registry entry.
func UpdateVendor(c *gin.Context) {
	var vendor models.Vendor
	if err := config.DB.Where("vendor_id = ? AND deleted_at IS NULL", c.Param("id")).
		First(&vendor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Website      *string `json:"website"`
		Description  *string `json:"description"`
		ContactName  *string `json:"contact_name"`
		ContactEmail *string `json:"contact_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Name != nil {
		name := utils.SanitizeInput(*req.Name)
		if len(name) < 2 || len(name) > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vendor name must be between 2 and 100 characters"})
			return
		}
		vendor.Name = name
	}
	if req.Website != nil {
		if !utils.ValidateURL(*req.Website) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid website URL is required"})
			return
		}
		vendor.Website = utils.SanitizeURL(*req.Website)
	}
	if req.Description != nil {
		vendor.Description = *req.Description
	}
	if req.ContactName != nil {
		vendor.ContactName = req.ContactName
	}
	if req.ContactEmail != nil {
		if *req.ContactEmail != "" && !utils.ValidateEmail(*req.ContactEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact email"})
			return
		}
		vendor.ContactEmail = req.ContactEmail
	}

	vendor.UpdatedAt = time.Now()
	if err := config.DB.Save(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vendor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "vendor": vendor})
}

// DeleteVendor soft-deletes a vendor. Vendors with assessments on record
// cannot be removed.
func DeleteVendor(c *gin.Context) {
	vendorID := c.Param("id")

	var vendor models.Vendor
	if err := config.DB.Where("vendor_id = ? AND deleted_at IS NULL", vendorID).
		First(&vendor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	var assessmentCount int64
	if err := config.DB.Model(&models.Assessment{}).
		Where("vendor_id = ?", vendorID).
		Count(&assessmentCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check vendor assessments"})
		return
	}
	if assessmentCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a vendor with assessments on record"})
		return
	}

	now := time.Now()
	vendor.DeletedAt = &now
	if err := config.DB.Save(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vendor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Vendor deleted"})
}

type productRequest struct {
	Name         string                 `json:"name" binding:"required"`
	Description  string                 `json:"description" binding:"required"`
	Category     models.ProductCategory `json:"category" binding:"required"`
	PricingModel models.PricingModel    `json:"pricing_model" binding:"required"`
}

// CreateProduct adds a product under a vendor.
func CreateProduct(c *gin.Context) {
	vendorID := c.Param("id")

	var vendor models.Vendor
	if err := config.DB.Where("vendor_id = ? AND deleted_at IS NULL", vendorID).
		First(&vendor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	now := time.Now()
	product := models.VendorProduct{
		ProductID:    uuid.NewString(),
		VendorID:     vendorID,
		Name:         utils.SanitizeInput(req.Name),
		Description:  req.Description,
		Category:     req.Category,
		PricingModel: req.PricingModel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

// GetProducts lists a vendor's products.
func GetProducts(c *gin.Context) {
	var products []models.VendorProduct
	if err := config.DB.Where("vendor_id = ?", c.Param("id")).
		Order("name ASC").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "total": len(products)})
}

// vendorRegistryStats aggregates verdict standing across the registry. A
// vendor's standing comes from its most recent completed assessment.
func vendorRegistryStats() (*models.VendorRegistryStats, error) {
	stats := &models.VendorRegistryStats{}

	var total int64
	if err := config.DB.Model(&models.Vendor{}).
		Where("deleted_at IS NULL").
		Count(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalVendors = int(total)

	var complete []models.Assessment
	if err := config.DB.
		Where("status = ?", models.StatusComplete).
		Order("reviewed_at DESC").
		Find(&complete).Error; err != nil {
		return nil, err
	}

	latest := make(map[string]models.Verdict)
	for _, a := range complete {
		if _, seen := latest[a.VendorID]; !seen {
			latest[a.VendorID] = a.Verdict
		}
	}
	for _, verdict := range latest {
		switch verdict {
		case models.VerdictApproved:
			stats.ApprovedVendors++
		case models.VerdictConditional:
			stats.ConditionalVendors++
		}
	}

	var pending int64
	if err := config.DB.Model(&models.Assessment{}).
		Where("status NOT IN ?", []models.AssessmentStatus{models.StatusComplete, models.StatusExpired}).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	stats.PendingAssessments = int(pending)

	return stats, nil
}
