package services

import (
	"errors"
	"fmt"

	"vendor-vetting-api/models"

	"gorm.io/gorm"
)

// AssessmentFilter narrows assessment listings. Zero values mean "no filter".
type AssessmentFilter struct {
	VendorID string
	Status   models.AssessmentStatus
	Verdict  models.Verdict
}

// AssessmentStore is the persistence boundary for assessments. Lookups
// return (nil, nil) when the record does not exist so the workflow can map
// absence to its own NotFound kind; any non-nil error is infrastructure.
type AssessmentStore interface {
	Create(a *models.Assessment) error
	GetByID(id string) (*models.Assessment, error)
	GetByToken(token string) (*models.Assessment, error)
	Save(a *models.Assessment) error
	List(filter AssessmentFilter) ([]models.Assessment, error)
}

// VendorStore resolves vendor records for creation checks and enrichment.
type VendorStore interface {
	GetByID(id string) (*models.Vendor, error)
}

// GormAssessmentStore backs AssessmentStore with the application database.
type GormAssessmentStore struct {
	db *gorm.DB
}

// NewGormAssessmentStore creates a store bound to db.
func NewGormAssessmentStore(db *gorm.DB) *GormAssessmentStore {
	return &GormAssessmentStore{db: db}
}

func (s *GormAssessmentStore) Create(a *models.Assessment) error {
	if err := s.db.Create(a).Error; err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

func (s *GormAssessmentStore) GetByID(id string) (*models.Assessment, error) {
	var assessment models.Assessment
	err := s.db.Where("assessment_id = ?", id).First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	return &assessment, nil
}

func (s *GormAssessmentStore) GetByToken(token string) (*models.Assessment, error) {
	var assessment models.Assessment
	err := s.db.Where("vendor_token = ?", token).First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment by token: %w", err)
	}
	return &assessment, nil
}

func (s *GormAssessmentStore) Save(a *models.Assessment) error {
	if err := s.db.Save(a).Error; err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

func (s *GormAssessmentStore) List(filter AssessmentFilter) ([]models.Assessment, error) {
	query := s.db.Model(&models.Assessment{})
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Verdict != "" {
		query = query.Where("verdict = ?", filter.Verdict)
	}

	var assessments []models.Assessment
	if err := query.Order("created_at DESC").Find(&assessments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

// GormVendorStore backs VendorStore with the application database.
type GormVendorStore struct {
	db *gorm.DB
}

// NewGormVendorStore creates a store bound to db.
func NewGormVendorStore(db *gorm.DB) *GormVendorStore {
	return &GormVendorStore{db: db}
}

func (s *GormVendorStore) GetByID(id string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := s.db.Preload("Products").
		Where("vendor_id = ? AND deleted_at IS NULL", id).
		First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor: %w", err)
	}
	return &vendor, nil
}
