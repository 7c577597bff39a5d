package models

// AssessmentStatus is the workflow state of an assessment. The wire values
// match what the frontend displays, so they are full labels rather than codes.
type AssessmentStatus string

const (
	StatusDraft            AssessmentStatus = "Draft"
	StatusAwaitingVendor   AssessmentStatus = "Awaiting Vendor Response"
	StatusInReview         AssessmentStatus = "In Review"
	StatusAwaitingApproval AssessmentStatus = "Awaiting Approval"
	StatusComplete         AssessmentStatus = "Complete"
	StatusExpired          AssessmentStatus = "Expired"
)

// IsTerminal reports whether no further workflow transition can leave the status.
func (s AssessmentStatus) IsTerminal() bool {
	return s == StatusComplete || s == StatusExpired
}

// IsValid reports whether s is one of the known workflow states.
func (s AssessmentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusAwaitingVendor, StatusInReview, StatusAwaitingApproval, StatusComplete, StatusExpired:
		return true
	}
	return false
}

// Verdict is the governance outcome of an assessment.
type Verdict string

const (
	VerdictApproved    Verdict = "Approved"
	VerdictConditional Verdict = "Conditional"
	VerdictRejected    Verdict = "Rejected"
	VerdictPending     Verdict = "Pending Review"
)

// IsValid reports whether v is one of the known verdicts.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictApproved, VerdictConditional, VerdictRejected, VerdictPending:
		return true
	}
	return false
}

// AssessmentType distinguishes first-time vetting from renewals and expedited reviews.
type AssessmentType string

const (
	TypeNewVendor AssessmentType = "New Vendor"
	TypeRenewal   AssessmentType = "Renewal/Re-assessment"
	TypeExpedited AssessmentType = "Expedited Review"
)

// IsValid reports whether t is one of the known assessment types.
func (t AssessmentType) IsValid() bool {
	switch t {
	case TypeNewVendor, TypeRenewal, TypeExpedited:
		return true
	}
	return false
}

// CompletionMethod selects who fills in the questionnaire at creation time.
type CompletionMethod string

const (
	CompletionInternal CompletionMethod = "internal"
	CompletionVendor   CompletionMethod = "vendor"
	CompletionHybrid   CompletionMethod = "hybrid"
)

// IsValid reports whether m is one of the known completion methods.
func (m CompletionMethod) IsValid() bool {
	switch m {
	case CompletionInternal, CompletionVendor, CompletionHybrid:
		return true
	}
	return false
}

// RequiresVendorToken reports whether creating with this method mints a
// self-service token and starts the assessment in AwaitingVendor.
func (m CompletionMethod) RequiresVendorToken() bool {
	return m == CompletionVendor || m == CompletionHybrid
}

// AnswerValue is a single questionnaire response.
type AnswerValue string

const (
	AnswerYes     AnswerValue = "yes"
	AnswerNo      AnswerValue = "no"
	AnswerNA      AnswerValue = "na"
	AnswerUnknown AnswerValue = "unknown"
)

// ProductCategory classifies an AI product in the catalog.
type ProductCategory string

const (
	CategoryChatbot            ProductCategory = "Chatbot/Assistant"
	CategoryCoding             ProductCategory = "Coding/Development"
	CategoryWriting            ProductCategory = "Writing/Content"
	CategoryImageGeneration    ProductCategory = "Image Generation"
	CategoryVideoGeneration    ProductCategory = "Video Generation"
	CategoryAudioTranscription ProductCategory = "Audio/Transcription"
	CategoryDataAnalysis       ProductCategory = "Data Analysis"
	CategoryAutomation         ProductCategory = "Automation"
	CategoryOther              ProductCategory = "Other"
)

// PricingModel classifies how a product is priced.
type PricingModel string

const (
	PricingFree         PricingModel = "Free"
	PricingFreemium     PricingModel = "Freemium"
	PricingSubscription PricingModel = "Subscription"
	PricingPayPerUse    PricingModel = "Pay-per-use/API"
	PricingEnterprise   PricingModel = "Enterprise/Custom"
)
