package services

import (
	"testing"
	"time"

	"vendor-vetting-api/models"
)

func newTestService(t *testing.T) (*AssessmentService, *memoryAssessmentStore) {
	t.Helper()
	store := newMemoryAssessmentStore()
	vendors := newMemoryVendorStore(&models.Vendor{
		VendorID: "vendor-1",
		Name:     "Acme AI",
		Products: []models.VendorProduct{
			{ProductID: "product-1", VendorID: "vendor-1", Name: "Acme Chat"},
		},
	})
	return NewAssessmentService(store, vendors), store
}

func createDraft(t *testing.T, svc *AssessmentService) *models.Assessment {
	t.Helper()
	assessment, err := svc.Create(CreateAssessmentRequest{
		VendorID:         "vendor-1",
		AssessmentType:   models.TypeNewVendor,
		RequestedBy:      "Jamie",
		RequestReason:    "Team wants to adopt Acme Chat",
		CompletionMethod: models.CompletionInternal,
	}, "user-a")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return assessment
}

func createVendorCompleted(t *testing.T, svc *AssessmentService) *models.Assessment {
	t.Helper()
	assessment, err := svc.Create(CreateAssessmentRequest{
		VendorID:         "vendor-1",
		AssessmentType:   models.TypeNewVendor,
		RequestedBy:      "Jamie",
		RequestReason:    "Vendor self-service vetting",
		CompletionMethod: models.CompletionVendor,
	}, "user-a")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return assessment
}

func fillAnswers(t *testing.T, svc *AssessmentService, id string, set AnswerSet) *models.Assessment {
	t.Helper()
	assessment, err := svc.SaveAnswers(id, UpdateAssessmentRequest{
		ComplianceAnswers:  &set.Compliance,
		SecurityAnswers:    &set.Security,
		OperationalAnswers: &set.Operational,
		TrustAnswers:       &set.Trust,
	})
	if err != nil {
		t.Fatalf("save answers failed: %v", err)
	}
	return assessment
}

func expectKind(t *testing.T, err error, kind ErrorKind) *WorkflowError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	wfErr, ok := AsWorkflowError(err)
	if !ok {
		t.Fatalf("expected workflow error, got %T: %v", err, err)
	}
	if wfErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%s)", kind, wfErr.Kind, wfErr.Message)
	}
	return wfErr
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(CreateAssessmentRequest{
		AssessmentType: models.TypeNewVendor,
		RequestedBy:    "Jamie",
		RequestReason:  "reason",
	}, "user-a")
	expectKind(t, err, ErrValidation)

	_, err = svc.Create(CreateAssessmentRequest{
		VendorID:       "vendor-missing",
		AssessmentType: models.TypeNewVendor,
		RequestedBy:    "Jamie",
		RequestReason:  "reason",
	}, "user-a")
	expectKind(t, err, ErrNotFound)

	_, err = svc.Create(CreateAssessmentRequest{
		VendorID:       "vendor-1",
		AssessmentType: "Bogus",
		RequestedBy:    "Jamie",
		RequestReason:  "reason",
	}, "user-a")
	expectKind(t, err, ErrValidation)

	badProduct := "product-404"
	_, err = svc.Create(CreateAssessmentRequest{
		VendorID:       "vendor-1",
		ProductID:      &badProduct,
		AssessmentType: models.TypeNewVendor,
		RequestedBy:    "Jamie",
		RequestReason:  "reason",
	}, "user-a")
	expectKind(t, err, ErrValidation)
}

func TestCreateInternalStartsAsDraft(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createDraft(t, svc)

	if assessment.Status != models.StatusDraft {
		t.Fatalf("expected Draft, got %s", assessment.Status)
	}
	if assessment.VendorToken != nil {
		t.Fatal("internal assessment must not carry a vendor token")
	}
	if assessment.Verdict != models.VerdictPending {
		t.Fatalf("expected Pending verdict, got %s", assessment.Verdict)
	}
	if assessment.Version != 1 {
		t.Fatalf("expected version 1, got %d", assessment.Version)
	}
	if assessment.CreatedByID != "user-a" {
		t.Fatalf("expected creator user-a, got %s", assessment.CreatedByID)
	}
}

func TestCreateVendorMethodMintsToken(t *testing.T) {
	svc, _ := newTestService(t)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	assessment := createVendorCompleted(t, svc)
	if assessment.Status != models.StatusAwaitingVendor {
		t.Fatalf("expected AwaitingVendor, got %s", assessment.Status)
	}
	if assessment.VendorToken == nil || *assessment.VendorToken == "" {
		t.Fatal("expected a vendor token")
	}
	wantExpiry := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)
	if assessment.VendorTokenExpiresAt == nil || !assessment.VendorTokenExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expected token expiry %v, got %v", wantExpiry, assessment.VendorTokenExpiresAt)
	}
}

func TestSaveAnswersRecomputesDerivedValues(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createDraft(t, svc)

	updated := fillAnswers(t, svc, assessment.AssessmentID, allYesAnswers())
	if updated.TotalScore != 11 {
		t.Fatalf("expected total 11, got %d", updated.TotalScore)
	}
	if updated.Verdict != models.VerdictApproved {
		t.Fatalf("expected Approved, got %s", updated.Verdict)
	}
	if updated.Status != models.StatusDraft {
		t.Fatalf("save must not change status, got %s", updated.Status)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version bump to 2, got %d", updated.Version)
	}
}

func TestSaveAnswersPartialMergeLeavesOtherCategories(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createDraft(t, svc)
	fillAnswers(t, svc, assessment.AssessmentID, allYesAnswers())

	// Replace only the trust map; the other three stay intact.
	trust := models.CategoryAnswers{
		"trust-1": {Answer: models.AnswerNo},
		"trust-2": {Answer: models.AnswerNo},
	}
	updated, err := svc.SaveAnswers(assessment.AssessmentID, UpdateAssessmentRequest{
		TrustAnswers: &trust,
	})
	if err != nil {
		t.Fatalf("partial save failed: %v", err)
	}
	if updated.ComplianceScore != 3 || updated.SecurityScore != 3 || updated.OperationalScore != 3 {
		t.Fatalf("untouched categories changed: %d/%d/%d",
			updated.ComplianceScore, updated.SecurityScore, updated.OperationalScore)
	}
	if updated.TrustScore != 0 || updated.TotalScore != 9 {
		t.Fatalf("expected trust 0 total 9, got %d/%d", updated.TrustScore, updated.TotalScore)
	}
}

func TestSaveAnswersRejectedForCompletedAssessment(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := completeApproved(t, svc)

	_, err := svc.SaveAnswers(assessment.AssessmentID, UpdateAssessmentRequest{})
	wfErr := expectKind(t, err, ErrInvalidState)
	if wfErr.Message != "Cannot update completed assessment" {
		t.Fatalf("unexpected message %q", wfErr.Message)
	}
}

// completeApproved drives a draft all the way to an approved completion.
func completeApproved(t *testing.T, svc *AssessmentService) *models.Assessment {
	t.Helper()
	assessment := createDraft(t, svc)
	fillAnswers(t, svc, assessment.AssessmentID, allYesAnswers())
	if _, err := svc.SubmitForReview(assessment.AssessmentID, "user-a"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	approved, err := svc.Approve(assessment.AssessmentID, "user-b", ApprovalRequest{})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	return approved
}

func TestSubmitEmptyAnswersScenario(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createDraft(t, svc)

	// Four empty maps: not complete, zero scores everywhere.
	if IsComplete(answerSetOf(assessment)) {
		t.Fatal("empty assessment reported complete")
	}
	result := ScoreAssessment(answerSetOf(assessment))
	if result.TotalScore != 0 || result.ComplianceScore != 0 || result.SecurityScore != 0 ||
		result.OperationalScore != 0 || result.TrustScore != 0 {
		t.Fatalf("expected all-zero scores, got %+v", result.ScoreSet)
	}

	_, err := svc.SubmitForReview(assessment.AssessmentID, "user-a")
	expectKind(t, err, ErrIncompleteAnswers)
}

func TestSubmitMissingEvidenceListsAllGaps(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createDraft(t, svc)

	set := allYesAnswers()
	set = setAnswer(set, "comp-1", models.QuestionAnswer{Answer: models.AnswerYes})
	set = setAnswer(set, "ops-1", models.QuestionAnswer{Answer: models.AnswerYes})
	fillAnswers(t, svc, assessment.AssessmentID, set)

	_, err := svc.SubmitForReview(assessment.AssessmentID, "user-a")
	wfErr := expectKind(t, err, ErrMissingEvidence)
	if len(wfErr.MissingEvidence) != 2 {
		t.Fatalf("expected 2 missing-evidence ids, got %v", wfErr.MissingEvidence)
	}
}

func TestSubmitHardFailScenario(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createDraft(t, svc)

	// Everything yes with evidence except comp-2 answered no.
	set := setAnswer(allYesAnswers(), QuestionNoTrainingReuse, models.QuestionAnswer{Answer: models.AnswerNo})
	fillAnswers(t, svc, assessment.AssessmentID, set)

	submitted, err := svc.SubmitForReview(assessment.AssessmentID, "user-a")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.TotalScore != 10 {
		t.Fatalf("expected total 10, got %d", submitted.TotalScore)
	}
	if submitted.Verdict != models.VerdictRejected {
		t.Fatalf("hard fail must reject despite score 10, got %s", submitted.Verdict)
	}
	if submitted.Status != models.StatusAwaitingApproval {
		t.Fatalf("expected AwaitingApproval, got %s", submitted.Status)
	}
	if submitted.AssessedByID == nil || *submitted.AssessedByID != "user-a" {
		t.Fatal("expected assessor stamp")
	}
	if submitted.AssessedAt == nil {
		t.Fatal("expected assessed timestamp")
	}
}

func TestSubmitWrongStatus(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createVendorCompleted(t, svc)

	// AwaitingVendor cannot be submitted internally.
	_, err := svc.SubmitForReview(assessment.AssessmentID, "user-a")
	expectKind(t, err, ErrInvalidState)

	_, err = svc.SubmitForReview("missing-id", "user-a")
	expectKind(t, err, ErrNotFound)
}

func TestApproveOverrideJustificationScenario(t *testing.T) {
	svc, _ := newTestService(t)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC) }

	assessment := createDraft(t, svc)

	// Score 7 with neither hard-fail flipped: computed verdict Conditional.
	set := allYesAnswers()
	for _, id := range []string{"ops-2", "ops-3", "trust-1", QuestionEthicsPolicy} {
		set = setAnswer(set, id, models.QuestionAnswer{Answer: models.AnswerNA})
	}
	fillAnswers(t, svc, assessment.AssessmentID, set)
	submitted, err := svc.SubmitForReview(assessment.AssessmentID, "user-a")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Verdict != models.VerdictConditional {
		t.Fatalf("expected Conditional, got %s", submitted.Verdict)
	}

	override := models.VerdictApproved

	// 10-character justification: too short.
	short := "only 10 ch"
	_, err = svc.Approve(assessment.AssessmentID, "user-b", ApprovalRequest{
		OverrideVerdict: &override,
		VerdictNotes:    &short,
	})
	expectKind(t, err, ErrJustificationTooShort)

	// 25-character justification: accepted.
	long := "vendor remediated all gaps"
	approved, err := svc.Approve(assessment.AssessmentID, "user-b", ApprovalRequest{
		OverrideVerdict: &override,
		VerdictNotes:    &long,
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != models.StatusComplete {
		t.Fatalf("expected Complete, got %s", approved.Status)
	}
	if approved.Verdict != models.VerdictApproved {
		t.Fatalf("expected overridden Approved, got %s", approved.Verdict)
	}
	if len(approved.Conditions) != 0 {
		t.Fatalf("non-Conditional final verdict must clear conditions, got %v", approved.Conditions)
	}
	wantExpiry := time.Date(2027, 6, 1, 9, 0, 0, 0, time.UTC)
	if approved.ExpiresAt == nil || !approved.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expected expiry %v, got %v", wantExpiry, approved.ExpiresAt)
	}
	if approved.ReviewedByID == nil || *approved.ReviewedByID != "user-b" {
		t.Fatal("expected reviewer stamp")
	}
}

func TestApproveConditionalRequiresConditions(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createDraft(t, svc)
	fillAnswers(t, svc, assessment.AssessmentID, allYesAnswers())
	if _, err := svc.SubmitForReview(assessment.AssessmentID, "user-a"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Computed verdict is Approved with no conditions; overriding to
	// Conditional without supplying any must fail.
	override := models.VerdictConditional
	justification := "needs an MFA rollout commitment first"
	_, err := svc.Approve(assessment.AssessmentID, "user-b", ApprovalRequest{
		OverrideVerdict: &override,
		VerdictNotes:    &justification,
	})
	expectKind(t, err, ErrMissingConditions)

	approved, err := svc.Approve(assessment.AssessmentID, "user-b", ApprovalRequest{
		OverrideVerdict: &override,
		VerdictNotes:    &justification,
		Conditions:      []string{"Complete MFA rollout within 90 days"},
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if len(approved.Conditions) != 1 {
		t.Fatalf("expected supplied condition kept, got %v", approved.Conditions)
	}
}

func TestApproveRejectedVerdictGetsNoExpiry(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createDraft(t, svc)
	set := setAnswer(allYesAnswers(), QuestionNoTrainingReuse, models.QuestionAnswer{Answer: models.AnswerNo})
	fillAnswers(t, svc, assessment.AssessmentID, set)
	if _, err := svc.SubmitForReview(assessment.AssessmentID, "user-a"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Ratifying the computed Rejected verdict needs no justification.
	approved, err := svc.Approve(assessment.AssessmentID, "user-b", ApprovalRequest{})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Verdict != models.VerdictRejected {
		t.Fatalf("expected Rejected, got %s", approved.Verdict)
	}
	if approved.ExpiresAt != nil {
		t.Fatalf("rejected completion must not set expiry, got %v", approved.ExpiresAt)
	}
}

func TestRejectForcesVerdict(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createDraft(t, svc)
	fillAnswers(t, svc, assessment.AssessmentID, allYesAnswers())
	if _, err := svc.SubmitForReview(assessment.AssessmentID, "user-a"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err := svc.Reject(assessment.AssessmentID, "user-b", "too short")
	expectKind(t, err, ErrJustificationTooShort)

	rejected, err := svc.Reject(assessment.AssessmentID, "user-b", "vendor failed contract negotiation entirely")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Verdict != models.VerdictRejected {
		t.Fatalf("expected forced Rejected over computed Approved, got %s", rejected.Verdict)
	}
	if rejected.Status != models.StatusComplete {
		t.Fatalf("expected Complete, got %s", rejected.Status)
	}
	if len(rejected.Conditions) != 0 {
		t.Fatalf("expected conditions cleared, got %v", rejected.Conditions)
	}
	if rejected.ExpiresAt != nil {
		t.Fatal("expected nil expiry after rejection")
	}

	// Terminal: no second decision.
	_, err = svc.Reject(assessment.AssessmentID, "user-b", "second decision should not be possible")
	expectKind(t, err, ErrInvalidState)
	_, err = svc.Approve(assessment.AssessmentID, "user-b", ApprovalRequest{})
	expectKind(t, err, ErrInvalidState)
}

func TestVendorSubmitHappyPath(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createVendorCompleted(t, svc)
	token := *assessment.VendorToken

	set := allYesAnswers()
	if _, err := svc.SaveAnswersByToken(token, UpdateAssessmentRequest{
		ComplianceAnswers:  &set.Compliance,
		SecurityAnswers:    &set.Security,
		OperationalAnswers: &set.Operational,
		TrustAnswers:       &set.Trust,
	}); err != nil {
		t.Fatalf("token save failed: %v", err)
	}

	submitted, err := svc.VendorSubmit(token)
	if err != nil {
		t.Fatalf("vendor submit failed: %v", err)
	}
	if submitted.Status != models.StatusInReview {
		t.Fatalf("expected InReview, got %s", submitted.Status)
	}
	if submitted.VendorSubmittedAt == nil {
		t.Fatal("expected vendor submission timestamp")
	}
	if submitted.TotalScore != 11 {
		t.Fatalf("expected scores computed on submit, got %d", submitted.TotalScore)
	}
}

func TestVendorSubmitIncomplete(t *testing.T) {
	svc, _ := newTestService(t)
	assessment := createVendorCompleted(t, svc)

	_, err := svc.VendorSubmit(*assessment.VendorToken)
	expectKind(t, err, ErrIncompleteAnswers)
}

func TestVendorTokenExpiry(t *testing.T) {
	svc, _ := newTestService(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	assessment := createVendorCompleted(t, svc)
	token := *assessment.VendorToken

	// Eight days later the 7-day token has lapsed for reads and writes alike.
	svc.now = func() time.Time { return base.AddDate(0, 0, 8) }

	_, err := svc.GetByToken(token)
	expectKind(t, err, ErrTokenExpired)

	set := allYesAnswers()
	_, err = svc.SaveAnswersByToken(token, UpdateAssessmentRequest{ComplianceAnswers: &set.Compliance})
	expectKind(t, err, ErrTokenExpired)

	_, err = svc.VendorSubmit(token)
	expectKind(t, err, ErrTokenExpired)
}

func TestVendorDoubleSubmissionScenario(t *testing.T) {
	svc, store := newTestService(t)
	assessment := createVendorCompleted(t, svc)
	token := *assessment.VendorToken

	set := allYesAnswers()
	if _, err := svc.SaveAnswersByToken(token, UpdateAssessmentRequest{
		ComplianceAnswers:  &set.Compliance,
		SecurityAnswers:    &set.Security,
		OperationalAnswers: &set.Operational,
		TrustAnswers:       &set.Trust,
	}); err != nil {
		t.Fatalf("token save failed: %v", err)
	}
	if _, err := svc.VendorSubmit(token); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	before, _ := store.GetByID(assessment.AssessmentID)

	// Any further token access is refused and leaves stored state untouched.
	_, err := svc.VendorSubmit(token)
	expectKind(t, err, ErrAlreadySubmitted)

	no := models.CategoryAnswers{"comp-1": {Answer: models.AnswerNo}}
	_, err = svc.SaveAnswersByToken(token, UpdateAssessmentRequest{ComplianceAnswers: &no})
	expectKind(t, err, ErrAlreadySubmitted)

	_, err = svc.GetByToken(token)
	expectKind(t, err, ErrAlreadySubmitted)

	after, _ := store.GetByID(assessment.AssessmentID)
	if after.Version != before.Version {
		t.Fatalf("rejected access mutated state: version %d -> %d", before.Version, after.Version)
	}
	if after.ComplianceAnswers["comp-1"].Answer != models.AnswerYes {
		t.Fatal("stored answers changed after refused write")
	}
}

func TestUnknownTokenNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.VendorSubmit("no-such-token")
	expectKind(t, err, ErrNotFound)
}

func TestExpireOverdueAssessments(t *testing.T) {
	svc, store := newTestService(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	stale := createVendorCompleted(t, svc)
	fresh := createDraft(t, svc)
	approved := completeApproved(t, svc)

	// Ten days on: the vendor token has lapsed, the approval has not.
	svc.now = func() time.Time { return base.AddDate(0, 0, 10) }
	expired, err := svc.ExpireOverdueAssessments()
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expiry, got %d", expired)
	}

	got, _ := store.GetByID(stale.AssessmentID)
	if got.Status != models.StatusExpired {
		t.Fatalf("expected stale assessment Expired, got %s", got.Status)
	}
	got, _ = store.GetByID(fresh.AssessmentID)
	if got.Status != models.StatusDraft {
		t.Fatalf("draft must be untouched, got %s", got.Status)
	}

	// Thirteen months on: the completed approval is past its validity.
	svc.now = func() time.Time { return base.AddDate(0, 13, 0) }
	expired, err = svc.ExpireOverdueAssessments()
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expiry, got %d", expired)
	}
	got, _ = store.GetByID(approved.AssessmentID)
	if got.Status != models.StatusExpired {
		t.Fatalf("expected approved assessment Expired, got %s", got.Status)
	}
}
