package services

import (
	"encoding/json"
	"sync"

	"vendor-vetting-api/models"
)

// memoryAssessmentStore is an in-memory AssessmentStore. Records are
// deep-copied on every read and write so callers cannot mutate stored state
// without going through Save, matching real repository semantics.
type memoryAssessmentStore struct {
	mu   sync.Mutex
	byID map[string]*models.Assessment
}

func newMemoryAssessmentStore() *memoryAssessmentStore {
	return &memoryAssessmentStore{byID: make(map[string]*models.Assessment)}
}

func cloneAssessment(a *models.Assessment) *models.Assessment {
	data, err := json.Marshal(a)
	if err != nil {
		panic(err)
	}
	var clone models.Assessment
	if err := json.Unmarshal(data, &clone); err != nil {
		panic(err)
	}
	return &clone
}

func (s *memoryAssessmentStore) Create(a *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[a.AssessmentID] = cloneAssessment(a)
	return nil
}

func (s *memoryAssessmentStore) GetByID(id string) (*models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneAssessment(a), nil
}

func (s *memoryAssessmentStore) GetByToken(token string) (*models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.byID {
		if a.VendorToken != nil && *a.VendorToken == token {
			return cloneAssessment(a), nil
		}
	}
	return nil, nil
}

func (s *memoryAssessmentStore) Save(a *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[a.AssessmentID] = cloneAssessment(a)
	return nil
}

func (s *memoryAssessmentStore) List(filter AssessmentFilter) ([]models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Assessment
	for _, a := range s.byID {
		if filter.VendorID != "" && a.VendorID != filter.VendorID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Verdict != "" && a.Verdict != filter.Verdict {
			continue
		}
		out = append(out, *cloneAssessment(a))
	}
	return out, nil
}

// memoryVendorStore is a fixed-content VendorStore.
type memoryVendorStore struct {
	vendors map[string]*models.Vendor
}

func newMemoryVendorStore(vendors ...*models.Vendor) *memoryVendorStore {
	byID := make(map[string]*models.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.VendorID] = v
	}
	return &memoryVendorStore{vendors: byID}
}

func (s *memoryVendorStore) GetByID(id string) (*models.Vendor, error) {
	v, ok := s.vendors[id]
	if !ok {
		return nil, nil
	}
	return v, nil
}
