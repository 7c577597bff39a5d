package models

import "time"

// Assessment represents the vendor_assessments table. Category scores, total
// score, verdict and conditions are derived values cached on the row; they are
// recomputed through the workflow service whenever an answer map changes and
// must never be written by hand.
type Assessment struct {
	AssessmentID string  `gorm:"primaryKey;column:assessment_id" json:"assessment_id"`
	VendorID     string  `gorm:"column:vendor_id" json:"vendor_id"`
	ProductID    *string `gorm:"column:product_id" json:"product_id"`

	// Request context
	AssessmentType AssessmentType `gorm:"column:assessment_type" json:"assessment_type"`
	RequestedBy    string         `gorm:"column:requested_by" json:"requested_by"`
	RequestReason  string         `gorm:"column:request_reason" json:"request_reason"`
	Department     *string        `gorm:"column:department" json:"department"`

	// Derived scores
	ComplianceScore  int `gorm:"column:compliance_score" json:"compliance_score"`
	SecurityScore    int `gorm:"column:security_score" json:"security_score"`
	OperationalScore int `gorm:"column:operational_score" json:"operational_score"`
	TrustScore       int `gorm:"column:trust_score" json:"trust_score"`
	TotalScore       int `gorm:"column:total_score" json:"total_score"`

	// Answers, one JSON map per category
	ComplianceAnswers  CategoryAnswers `gorm:"column:compliance_answers;type:json" json:"compliance_answers"`
	SecurityAnswers    CategoryAnswers `gorm:"column:security_answers;type:json" json:"security_answers"`
	OperationalAnswers CategoryAnswers `gorm:"column:operational_answers;type:json" json:"operational_answers"`
	TrustAnswers       CategoryAnswers `gorm:"column:trust_answers;type:json" json:"trust_answers"`

	// Verdict
	Verdict      Verdict    `gorm:"column:verdict" json:"verdict"`
	VerdictNotes *string    `gorm:"column:verdict_notes" json:"verdict_notes"`
	Conditions   StringList `gorm:"column:conditions;type:json" json:"conditions"`

	// Workflow
	Status       AssessmentStatus `gorm:"column:status" json:"status"`
	AssessedByID *string          `gorm:"column:assessed_by_id" json:"assessed_by_id"`
	AssessedAt   *time.Time       `gorm:"column:assessed_at" json:"assessed_at"`
	ReviewedByID *string          `gorm:"column:reviewed_by_id" json:"reviewed_by_id"`
	ReviewedAt   *time.Time       `gorm:"column:reviewed_at" json:"reviewed_at"`

	// Vendor self-service
	VendorToken          *string    `gorm:"column:vendor_token" json:"vendor_token"`
	VendorTokenExpiresAt *time.Time `gorm:"column:vendor_token_expires_at" json:"vendor_token_expires_at"`
	VendorSubmittedAt    *time.Time `gorm:"column:vendor_submitted_at" json:"vendor_submitted_at"`

	// Metadata
	CreatedByID string     `gorm:"column:created_by_id" json:"created_by_id"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at"`
	Version     int        `gorm:"column:version" json:"version"`

	// Relations (populated on read for display enrichment)
	Vendor  *Vendor        `gorm:"-" json:"vendor,omitempty"`
	Product *VendorProduct `gorm:"-" json:"product,omitempty"`
}

// TableName specifies the table for Assessment.
func (Assessment) TableName() string {
	return "vendor_assessments"
}

// TokenExpired reports whether the vendor self-service token has lapsed at
// the given instant. A token with no expiry on record is treated as expired.
func (a *Assessment) TokenExpired(now time.Time) bool {
	if a.VendorTokenExpiresAt == nil {
		return true
	}
	return a.VendorTokenExpiresAt.Before(now)
}
