package services

import "vendor-vetting-api/models"

// VettingQuestion is one immutable catalog entry. Weights are all 1 in the
// current catalog but the scoring engine supports any non-negative weight.
type VettingQuestion struct {
	ID           string `json:"id"`
	Question     string `json:"question"`
	Importance   string `json:"importance"` // critical | high | medium
	RedFlag      string `json:"red_flag"`
	EvidenceType string `json:"evidence_type"`
	Weight       int    `json:"weight"`
}

// Question ids with special workflow meaning. Hard-fail and remediation rules
// key on these stable ids, never on catalog position.
const (
	QuestionDataResidency   = "comp-1"
	QuestionNoTrainingReuse = "comp-2"
	QuestionCertification   = "sec-1"
	QuestionMFA             = "sec-2"
	QuestionSLA             = "ops-1"
	QuestionEthicsPolicy    = "trust-2"
)

// ComplianceQuestions covers data handling and regulatory posture. Max score: 3.
var ComplianceQuestions = []VettingQuestion{
	{
		ID:           QuestionDataResidency,
		Question:     "Does the vendor disclose where data is stored (region/country)?",
		Importance:   "critical",
		RedFlag:      "Unknown data residency creates GDPR/regulatory compliance risks",
		EvidenceType: "Link to data residency documentation or privacy policy",
		Weight:       1,
	},
	{
		ID:           QuestionNoTrainingReuse,
		Question:     "Does the vendor confirm they do NOT retain or reuse customer data for model training?",
		Importance:   "critical",
		RedFlag:      "Data used for training = potential IP leakage and privacy violations",
		EvidenceType: "Link to data usage policy or enterprise agreement terms",
		Weight:       1,
	},
	{
		ID:           "comp-3",
		Question:     "Does the vendor demonstrate compliance with GDPR/CCPA/relevant data protection laws?",
		Importance:   "critical",
		RedFlag:      "No documented compliance creates legal liability",
		EvidenceType: "Link to compliance certifications, DPA, or privacy documentation",
		Weight:       1,
	},
}

// SecurityQuestions covers certification, authentication and encryption. Max score: 3.
var SecurityQuestions = []VettingQuestion{
	{
		ID:           QuestionCertification,
		Question:     "Does the vendor hold SOC 2 Type II or ISO 27001 certification?",
		Importance:   "critical",
		RedFlag:      "No security certification = unverified security controls",
		EvidenceType: "Link to certification or audit report summary",
		Weight:       1,
	},
	{
		ID:           QuestionMFA,
		Question:     "Does the vendor support SSO and/or MFA for user authentication?",
		Importance:   "high",
		RedFlag:      "Weak authentication increases account compromise risk",
		EvidenceType: "Link to authentication documentation or feature page",
		Weight:       1,
	},
	{
		ID:           "sec-3",
		Question:     "Does the vendor encrypt data in transit (TLS) and at rest (AES-256 or equivalent)?",
		Importance:   "critical",
		RedFlag:      "Unencrypted data creates exposure during transmission and storage",
		EvidenceType: "Link to security whitepaper or documentation",
		Weight:       1,
	},
}

// OperationalQuestions covers reliability and support. Max score: 3.
var OperationalQuestions = []VettingQuestion{
	{
		ID:           QuestionSLA,
		Question:     "Does the vendor provide uptime guarantees (SLAs) of 99.5% or higher?",
		Importance:   "high",
		RedFlag:      "No SLA = unpredictable reliability, business continuity risk",
		EvidenceType: "Link to SLA documentation or service terms",
		Weight:       1,
	},
	{
		ID:           "ops-2",
		Question:     "Does the vendor offer customer support with defined response times?",
		Importance:   "medium",
		RedFlag:      "No support = you're on your own when issues arise",
		EvidenceType: "Link to support documentation or plans",
		Weight:       1,
	},
	{
		ID:           "ops-3",
		Question:     "Does the vendor disclose API rate limits, usage caps, or fallback procedures?",
		Importance:   "medium",
		RedFlag:      "Unknown limits can cause unexpected service disruptions",
		EvidenceType: "Link to API documentation or fair use policy",
		Weight:       1,
	},
}

// TrustQuestions covers transparency and AI governance. Max score: 2.
var TrustQuestions = []VettingQuestion{
	{
		ID:           "trust-1",
		Question:     "Does the vendor disclose how their AI models are trained (data sources, methodology)?",
		Importance:   "medium",
		RedFlag:      "Opaque training creates bias, IP, and ethical concerns",
		EvidenceType: "Link to model card, documentation, or public statements",
		Weight:       1,
	},
	{
		ID:           QuestionEthicsPolicy,
		Question:     "Does the vendor publish an AI Ethics Statement or Responsible AI policy?",
		Importance:   "medium",
		RedFlag:      "No ethics commitment may indicate immature governance",
		EvidenceType: "Link to ethics policy or responsible AI page",
		Weight:       1,
	},
}

// CategoryMetadata describes one fixed questionnaire category.
type CategoryMetadata struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MaxScore int    `json:"max_score"`
}

// QuestionCatalog exposes the full fixed questionnaire for API consumers.
type QuestionCatalog struct {
	Compliance  []VettingQuestion  `json:"compliance"`
	Security    []VettingQuestion  `json:"security"`
	Operational []VettingQuestion  `json:"operational"`
	Trust       []VettingQuestion  `json:"trust"`
	Categories  []CategoryMetadata `json:"categories"`
	MaxTotal    int                `json:"max_total_score"`
}

// CategoryMaxScore sums the weights of a category's questions.
func CategoryMaxScore(questions []VettingQuestion) int {
	total := 0
	for _, q := range questions {
		total += q.Weight
	}
	return total
}

// MaxTotalScore is the combined maximum across all four categories (11 with
// the current catalog).
func MaxTotalScore() int {
	return CategoryMaxScore(ComplianceQuestions) +
		CategoryMaxScore(SecurityQuestions) +
		CategoryMaxScore(OperationalQuestions) +
		CategoryMaxScore(TrustQuestions)
}

// Catalog returns the full questionnaire with category metadata.
func Catalog() QuestionCatalog {
	return QuestionCatalog{
		Compliance:  ComplianceQuestions,
		Security:    SecurityQuestions,
		Operational: OperationalQuestions,
		Trust:       TrustQuestions,
		Categories: []CategoryMetadata{
			{ID: "compliance", Name: "Data & Compliance", MaxScore: CategoryMaxScore(ComplianceQuestions)},
			{ID: "security", Name: "Security", MaxScore: CategoryMaxScore(SecurityQuestions)},
			{ID: "operational", Name: "Operational", MaxScore: CategoryMaxScore(OperationalQuestions)},
			{ID: "trust", Name: "Trust & Transparency", MaxScore: CategoryMaxScore(TrustQuestions)},
		},
		MaxTotal: MaxTotalScore(),
	}
}

// AnswerSet groups the four per-category answer maps that move through
// scoring, validation and the workflow together.
type AnswerSet struct {
	Compliance  models.CategoryAnswers `json:"compliance_answers"`
	Security    models.CategoryAnswers `json:"security_answers"`
	Operational models.CategoryAnswers `json:"operational_answers"`
	Trust       models.CategoryAnswers `json:"trust_answers"`
}

// AllQuestionIDs lists every question id across the four categories in
// catalog order.
func AllQuestionIDs() []string {
	groups := [][]VettingQuestion{ComplianceQuestions, SecurityQuestions, OperationalQuestions, TrustQuestions}
	var ids []string
	for _, group := range groups {
		for _, q := range group {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
