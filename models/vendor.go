package models

import "time"

// Vendor represents the vendors table.
type Vendor struct {
	VendorID     string     `gorm:"primaryKey;column:vendor_id" json:"vendor_id"`
	Name         string     `gorm:"column:name" json:"name"`
	Website      string     `gorm:"column:website" json:"website"`
	Description  string     `gorm:"column:description" json:"description"`
	ContactName  *string    `gorm:"column:contact_name" json:"contact_name"`
	ContactEmail *string    `gorm:"column:contact_email" json:"contact_email"`
	CreatedByID  string     `gorm:"column:created_by_id" json:"created_by_id"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Products []VendorProduct `gorm:"foreignKey:VendorID" json:"products,omitempty"`
}

// VendorProduct represents the vendor_products table.
type VendorProduct struct {
	ProductID    string          `gorm:"primaryKey;column:product_id" json:"product_id"`
	VendorID     string          `gorm:"column:vendor_id" json:"vendor_id"`
	Name         string          `gorm:"column:name" json:"name"`
	Description  string          `gorm:"column:description" json:"description"`
	Category     ProductCategory `gorm:"column:category" json:"category"`
	PricingModel PricingModel    `gorm:"column:pricing_model" json:"pricing_model"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides
func (Vendor) TableName() string {
	return "vendors"
}

func (VendorProduct) TableName() string {
	return "vendor_products"
}

// ProductByID returns the vendor's product with the given id, if any.
func (v *Vendor) ProductByID(productID string) *VendorProduct {
	for i := range v.Products {
		if v.Products[i].ProductID == productID {
			return &v.Products[i]
		}
	}
	return nil
}

// VendorRegistryStats summarizes the vendor registry for the dashboard.
type VendorRegistryStats struct {
	TotalVendors       int `json:"total_vendors"`
	ApprovedVendors    int `json:"approved_vendors"`
	ConditionalVendors int `json:"conditional_vendors"`
	PendingAssessments int `json:"pending_assessments"`
}
