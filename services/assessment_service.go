package services

import (
	"strings"
	"sync"
	"time"

	"vendor-vetting-api/models"

	"github.com/google/uuid"
)

const (
	// VendorTokenValidityDays is the lifetime of a self-service token.
	VendorTokenValidityDays = 7

	// ApprovalValidityMonths is how long a non-rejected completed assessment
	// stays valid before re-assessment is due.
	ApprovalValidityMonths = 12

	// MinJustificationLength applies to verdict overrides and rejections.
	MinJustificationLength = 20
)

// AssessmentService owns the assessment lifecycle: creation, answer edits,
// submission, the vendor self-service path, review decisions and the expiry
// sweep. Every transition runs guard checks, derives scores through
// ScoreAssessment and persists as one unit under a per-assessment lock.
type AssessmentService struct {
	store   AssessmentStore
	vendors VendorStore
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAssessmentService wires the workflow to its stores.
func NewAssessmentService(store AssessmentStore, vendors VendorStore) *AssessmentService {
	return &AssessmentService{
		store:   store,
		vendors: vendors,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

// lockAssessment serializes transitions on a single assessment id.
// Transitions on different ids proceed in parallel.
func (s *AssessmentService) lockAssessment(id string) func() {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// CreateAssessmentRequest carries the creation payload.
type CreateAssessmentRequest struct {
	VendorID         string                  `json:"vendor_id"`
	ProductID        *string                 `json:"product_id"`
	AssessmentType   models.AssessmentType   `json:"assessment_type"`
	RequestedBy      string                  `json:"requested_by"`
	RequestReason    string                  `json:"request_reason"`
	Department       *string                 `json:"department"`
	CompletionMethod models.CompletionMethod `json:"completion_method"`
}

// Create validates the request, resolves the vendor and creates the
// assessment. Vendor- and hybrid-completion assessments start in
// AwaitingVendor with a freshly minted 7-day token; everything else starts
// as a Draft.
func (s *AssessmentService) Create(req CreateAssessmentRequest, actorID string) (*models.Assessment, error) {
	if strings.TrimSpace(req.VendorID) == "" {
		return nil, newWorkflowError(ErrValidation, "Vendor ID is required")
	}
	if !req.AssessmentType.IsValid() {
		return nil, newWorkflowError(ErrValidation, "Valid assessment type is required")
	}
	if strings.TrimSpace(req.RequestedBy) == "" {
		return nil, newWorkflowError(ErrValidation, "Requester name is required")
	}
	if strings.TrimSpace(req.RequestReason) == "" {
		return nil, newWorkflowError(ErrValidation, "Request reason is required")
	}
	method := req.CompletionMethod
	if method == "" {
		method = models.CompletionInternal
	}
	if !method.IsValid() {
		return nil, newWorkflowError(ErrValidation, "Valid completion method is required")
	}

	vendor, err := s.vendors.GetByID(req.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, newWorkflowError(ErrNotFound, "Vendor not found")
	}
	if req.ProductID != nil && *req.ProductID != "" && vendor.ProductByID(*req.ProductID) == nil {
		return nil, newWorkflowError(ErrValidation, "Product does not belong to this vendor")
	}

	now := s.now()
	assessment := &models.Assessment{
		AssessmentID:       uuid.NewString(),
		VendorID:           req.VendorID,
		ProductID:          req.ProductID,
		AssessmentType:     req.AssessmentType,
		RequestedBy:        req.RequestedBy,
		RequestReason:      req.RequestReason,
		Department:         req.Department,
		ComplianceAnswers:  models.CategoryAnswers{},
		SecurityAnswers:    models.CategoryAnswers{},
		OperationalAnswers: models.CategoryAnswers{},
		TrustAnswers:       models.CategoryAnswers{},
		Verdict:            models.VerdictPending,
		Conditions:         models.StringList{},
		Status:             models.StatusDraft,
		CreatedByID:        actorID,
		CreatedAt:          now,
		UpdatedAt:          now,
		Version:            1,
	}

	if method.RequiresVendorToken() {
		token := uuid.NewString()
		expiry := now.AddDate(0, 0, VendorTokenValidityDays)
		assessment.VendorToken = &token
		assessment.VendorTokenExpiresAt = &expiry
		assessment.Status = models.StatusAwaitingVendor
	}

	if err := s.store.Create(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// UpdateAssessmentRequest is a partial edit: nil fields are left unchanged.
// A supplied answer map replaces that category's map wholesale.
type UpdateAssessmentRequest struct {
	AssessmentType     *models.AssessmentType  `json:"assessment_type"`
	RequestedBy        *string                 `json:"requested_by"`
	RequestReason      *string                 `json:"request_reason"`
	Department         *string                 `json:"department"`
	ComplianceAnswers  *models.CategoryAnswers `json:"compliance_answers"`
	SecurityAnswers    *models.CategoryAnswers `json:"security_answers"`
	OperationalAnswers *models.CategoryAnswers `json:"operational_answers"`
	TrustAnswers       *models.CategoryAnswers `json:"trust_answers"`
}

func (r *UpdateAssessmentRequest) touchesAnswers() bool {
	return r.ComplianceAnswers != nil || r.SecurityAnswers != nil ||
		r.OperationalAnswers != nil || r.TrustAnswers != nil
}

// SaveAnswers merges an edit into an assessment in Draft, InReview or
// AwaitingApproval. If any answer map changed, scores, verdict and
// conditions are recomputed through ScoreAssessment. Status is unchanged.
func (s *AssessmentService) SaveAnswers(assessmentID string, req UpdateAssessmentRequest) (*models.Assessment, error) {
	unlock := s.lockAssessment(assessmentID)
	defer unlock()

	assessment, err := s.store.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, newWorkflowError(ErrNotFound, "Assessment not found")
	}

	if assessment.Status == models.StatusComplete {
		return nil, newWorkflowError(ErrInvalidState, "Cannot update completed assessment")
	}
	switch assessment.Status {
	case models.StatusDraft, models.StatusInReview, models.StatusAwaitingApproval:
	default:
		return nil, newWorkflowError(ErrInvalidState, "Assessment cannot be updated in status %q", assessment.Status)
	}

	s.applyUpdate(assessment, req)
	if err := s.persist(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// SaveAnswersByToken is the vendor auto-save path. Token expiry and the
// single-submission rule are enforced before any write.
func (s *AssessmentService) SaveAnswersByToken(token string, req UpdateAssessmentRequest) (*models.Assessment, error) {
	assessment, err := s.loadByToken(token)
	if err != nil {
		return nil, err
	}

	unlock := s.lockAssessment(assessment.AssessmentID)
	defer unlock()

	// Reload under the lock so a concurrent submission cannot slip in
	// between the token check and the write.
	assessment, err = s.loadByToken(token)
	if err != nil {
		return nil, err
	}

	// The vendor path only ever edits answers.
	answersOnly := UpdateAssessmentRequest{
		ComplianceAnswers:  req.ComplianceAnswers,
		SecurityAnswers:    req.SecurityAnswers,
		OperationalAnswers: req.OperationalAnswers,
		TrustAnswers:       req.TrustAnswers,
	}
	s.applyUpdate(assessment, answersOnly)
	if err := s.persist(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// GetByToken loads the assessment behind a vendor token, enforcing expiry
// and the single-submission rule before any read of answer state.
func (s *AssessmentService) GetByToken(token string) (*models.Assessment, error) {
	return s.loadByToken(token)
}

// SubmitForReview moves a Draft or InReview assessment to AwaitingApproval
// once every question is answered and every "yes" carries evidence or notes.
func (s *AssessmentService) SubmitForReview(assessmentID, actorID string) (*models.Assessment, error) {
	unlock := s.lockAssessment(assessmentID)
	defer unlock()

	assessment, err := s.store.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, newWorkflowError(ErrNotFound, "Assessment not found")
	}

	if assessment.Status != models.StatusDraft && assessment.Status != models.StatusInReview {
		return nil, newWorkflowError(ErrInvalidState, "Assessment cannot be submitted in status %q", assessment.Status)
	}

	if err := s.checkSubmittable(assessment); err != nil {
		return nil, err
	}

	now := s.now()
	s.applyScores(assessment, ScoreAssessment(answerSetOf(assessment)))
	assessment.Status = models.StatusAwaitingApproval
	assessment.AssessedByID = &actorID
	assessment.AssessedAt = &now

	if err := s.persist(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// VendorSubmit finalizes a vendor's self-service questionnaire. On success
// the assessment moves to InReview and the token can never write again.
func (s *AssessmentService) VendorSubmit(token string) (*models.Assessment, error) {
	assessment, err := s.loadByToken(token)
	if err != nil {
		return nil, err
	}

	unlock := s.lockAssessment(assessment.AssessmentID)
	defer unlock()

	assessment, err = s.loadByToken(token)
	if err != nil {
		return nil, err
	}

	if err := s.checkSubmittable(assessment); err != nil {
		return nil, err
	}

	now := s.now()
	s.applyScores(assessment, ScoreAssessment(answerSetOf(assessment)))
	assessment.Status = models.StatusInReview
	assessment.VendorSubmittedAt = &now

	if err := s.persist(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// ApprovalRequest carries the reviewer's decision payload.
type ApprovalRequest struct {
	OverrideVerdict *models.Verdict `json:"override_verdict"`
	VerdictNotes    *string         `json:"verdict_notes"`
	Conditions      []string        `json:"conditions"`
}

// Approve completes an assessment awaiting approval. The reviewer either
// ratifies the computed verdict or overrides it; an override is a high-stakes
// action and requires a written justification. A final Conditional verdict
// must carry at least one remediation condition.
func (s *AssessmentService) Approve(assessmentID, actorID string, req ApprovalRequest) (*models.Assessment, error) {
	unlock := s.lockAssessment(assessmentID)
	defer unlock()

	assessment, err := s.store.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, newWorkflowError(ErrNotFound, "Assessment not found")
	}

	if assessment.Status != models.StatusAwaitingApproval {
		return nil, newWorkflowError(ErrInvalidState, "Assessment is not awaiting approval")
	}

	finalVerdict := assessment.Verdict
	if req.OverrideVerdict != nil {
		if !req.OverrideVerdict.IsValid() {
			return nil, newWorkflowError(ErrValidation, "Unknown verdict %q", *req.OverrideVerdict)
		}
		if *req.OverrideVerdict != assessment.Verdict {
			if req.VerdictNotes == nil || len(*req.VerdictNotes) < MinJustificationLength {
				return nil, newWorkflowError(ErrJustificationTooShort,
					"Override justification must be at least %d characters", MinJustificationLength)
			}
		}
		finalVerdict = *req.OverrideVerdict
	}

	conditions := assessment.Conditions
	if req.Conditions != nil {
		conditions = models.StringList(req.Conditions)
	}
	if finalVerdict == models.VerdictConditional && len(conditions) == 0 {
		return nil, newWorkflowError(ErrMissingConditions, "Conditional approval requires at least one condition")
	}
	if finalVerdict != models.VerdictConditional {
		conditions = models.StringList{}
	}

	now := s.now()
	assessment.Status = models.StatusComplete
	assessment.Verdict = finalVerdict
	if req.VerdictNotes != nil {
		assessment.VerdictNotes = req.VerdictNotes
	}
	assessment.Conditions = conditions
	assessment.ReviewedByID = &actorID
	assessment.ReviewedAt = &now

	if finalVerdict != models.VerdictRejected {
		expiry := now.AddDate(0, ApprovalValidityMonths, 0)
		assessment.ExpiresAt = &expiry
	} else {
		assessment.ExpiresAt = nil
	}

	if err := s.persist(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// Reject completes an assessment awaiting approval with a forced Rejected
// verdict. There is no reject-but-approve path: the verdict is always
// Rejected, conditions are cleared and no expiry is set.
func (s *AssessmentService) Reject(assessmentID, actorID, verdictNotes string) (*models.Assessment, error) {
	unlock := s.lockAssessment(assessmentID)
	defer unlock()

	assessment, err := s.store.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, newWorkflowError(ErrNotFound, "Assessment not found")
	}

	if assessment.Status != models.StatusAwaitingApproval {
		return nil, newWorkflowError(ErrInvalidState, "Assessment is not awaiting approval")
	}

	if len(verdictNotes) < MinJustificationLength {
		return nil, newWorkflowError(ErrJustificationTooShort,
			"Rejection reason must be at least %d characters", MinJustificationLength)
	}

	now := s.now()
	assessment.Status = models.StatusComplete
	assessment.Verdict = models.VerdictRejected
	assessment.VerdictNotes = &verdictNotes
	assessment.Conditions = models.StringList{}
	assessment.ReviewedByID = &actorID
	assessment.ReviewedAt = &now
	assessment.ExpiresAt = nil

	if err := s.persist(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// ExpireOverdueAssessments marks lapsed assessments as Expired: awaiting-
// vendor records whose token window closed without a submission, and
// completed records past their validity date. Returns how many were expired.
func (s *AssessmentService) ExpireOverdueAssessments() (int, error) {
	expired := 0

	awaiting, err := s.store.List(AssessmentFilter{Status: models.StatusAwaitingVendor})
	if err != nil {
		return expired, err
	}
	now := s.now()
	for i := range awaiting {
		if !awaiting[i].TokenExpired(now) {
			continue
		}
		if err := s.expireOne(awaiting[i].AssessmentID); err != nil {
			return expired, err
		}
		expired++
	}

	complete, err := s.store.List(AssessmentFilter{Status: models.StatusComplete})
	if err != nil {
		return expired, err
	}
	for i := range complete {
		if complete[i].ExpiresAt == nil || complete[i].ExpiresAt.After(now) {
			continue
		}
		if err := s.expireOne(complete[i].AssessmentID); err != nil {
			return expired, err
		}
		expired++
	}

	return expired, nil
}

func (s *AssessmentService) expireOne(assessmentID string) error {
	unlock := s.lockAssessment(assessmentID)
	defer unlock()

	assessment, err := s.store.GetByID(assessmentID)
	if err != nil || assessment == nil {
		return err
	}
	if assessment.Status == models.StatusExpired {
		return nil
	}
	assessment.Status = models.StatusExpired
	return s.persist(assessment)
}

// loadByToken resolves a vendor token and enforces the self-service guards:
// the token must be unexpired and the vendor must not have submitted yet.
func (s *AssessmentService) loadByToken(token string) (*models.Assessment, error) {
	assessment, err := s.store.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, newWorkflowError(ErrNotFound, "Assessment not found")
	}
	if assessment.TokenExpired(s.now()) {
		return nil, newWorkflowError(ErrTokenExpired, "This assessment link has expired")
	}
	if assessment.VendorSubmittedAt != nil {
		return nil, newWorkflowError(ErrAlreadySubmitted, "This assessment has already been submitted")
	}
	return assessment, nil
}

// checkSubmittable runs the completeness and evidence gates shared by the
// internal and vendor submission paths.
func (s *AssessmentService) checkSubmittable(assessment *models.Assessment) error {
	answers := answerSetOf(assessment)

	if !IsComplete(answers) {
		return newWorkflowError(ErrIncompleteAnswers, "All questions must be answered before submission")
	}

	evidence := RequiredEvidence(answers)
	if !evidence.Valid {
		return &WorkflowError{
			Kind:            ErrMissingEvidence,
			Message:         "Evidence is required for all Yes answers",
			MissingEvidence: evidence.MissingEvidence,
		}
	}
	return nil
}

// applyUpdate merges an edit and, if it touched any answer map, recomputes
// the derived values. This is the only place besides the submit paths that
// writes scores, and it always goes through ScoreAssessment.
func (s *AssessmentService) applyUpdate(assessment *models.Assessment, req UpdateAssessmentRequest) {
	if req.AssessmentType != nil && req.AssessmentType.IsValid() {
		assessment.AssessmentType = *req.AssessmentType
	}
	if req.RequestedBy != nil && *req.RequestedBy != "" {
		assessment.RequestedBy = *req.RequestedBy
	}
	if req.RequestReason != nil && *req.RequestReason != "" {
		assessment.RequestReason = *req.RequestReason
	}
	if req.Department != nil {
		assessment.Department = req.Department
	}

	if req.ComplianceAnswers != nil {
		assessment.ComplianceAnswers = *req.ComplianceAnswers
	}
	if req.SecurityAnswers != nil {
		assessment.SecurityAnswers = *req.SecurityAnswers
	}
	if req.OperationalAnswers != nil {
		assessment.OperationalAnswers = *req.OperationalAnswers
	}
	if req.TrustAnswers != nil {
		assessment.TrustAnswers = *req.TrustAnswers
	}

	if req.touchesAnswers() {
		s.applyScores(assessment, ScoreAssessment(answerSetOf(assessment)))
	}
}

func (s *AssessmentService) applyScores(assessment *models.Assessment, result ScoreResult) {
	assessment.ComplianceScore = result.ComplianceScore
	assessment.SecurityScore = result.SecurityScore
	assessment.OperationalScore = result.OperationalScore
	assessment.TrustScore = result.TrustScore
	assessment.TotalScore = result.TotalScore
	assessment.Verdict = result.Verdict
	assessment.Conditions = models.StringList(result.Conditions)
}

// persist stamps the bookkeeping fields and writes the record. The version
// counter increments on every mutating transition; it is tracked for
// optimistic-concurrency support but not enforced as a compare-and-swap.
func (s *AssessmentService) persist(assessment *models.Assessment) error {
	assessment.Version++
	assessment.UpdatedAt = s.now()
	return s.store.Save(assessment)
}

func answerSetOf(assessment *models.Assessment) AnswerSet {
	return AnswerSet{
		Compliance:  assessment.ComplianceAnswers,
		Security:    assessment.SecurityAnswers,
		Operational: assessment.OperationalAnswers,
		Trust:       assessment.TrustAnswers,
	}
}
