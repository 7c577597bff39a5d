package services

import "vendor-vetting-api/models"

// ScoreSet holds the derived per-category and total scores.
type ScoreSet struct {
	ComplianceScore  int `json:"compliance_score"`
	SecurityScore    int `json:"security_score"`
	OperationalScore int `json:"operational_score"`
	TrustScore       int `json:"trust_score"`
	TotalScore       int `json:"total_score"`
}

// ScoreResult is the composed output of scoring an answer set: scores,
// verdict and remediation conditions, always computed together so they can
// never drift apart.
type ScoreResult struct {
	ScoreSet
	Verdict    models.Verdict `json:"verdict"`
	Conditions []string       `json:"conditions"`
}

// EvidenceCheck reports which "yes" answers lack both evidence and notes.
type EvidenceCheck struct {
	Valid           bool     `json:"valid"`
	MissingEvidence []string `json:"missing_evidence"`
}

// CategoryScore sums the weight of every question answered exactly "yes".
// Other values ("no", "na", "unknown", missing, or anything malformed) score
// zero. Answer keys not present in the question list are ignored.
func CategoryScore(answers models.CategoryAnswers, questions []VettingQuestion) int {
	score := 0
	for _, q := range questions {
		if answer, ok := answers[q.ID]; ok && answer.Answer == models.AnswerYes {
			score += q.Weight
		}
	}
	return score
}

// AllScores computes the four category scores and their total.
func AllScores(answers AnswerSet) ScoreSet {
	scores := ScoreSet{
		ComplianceScore:  CategoryScore(answers.Compliance, ComplianceQuestions),
		SecurityScore:    CategoryScore(answers.Security, SecurityQuestions),
		OperationalScore: CategoryScore(answers.Operational, OperationalQuestions),
		TrustScore:       CategoryScore(answers.Trust, TrustQuestions),
	}
	scores.TotalScore = scores.ComplianceScore + scores.SecurityScore + scores.OperationalScore + scores.TrustScore
	return scores
}

// DetermineVerdict applies the hard-fail rules first, then the score
// thresholds. A "no" on data-training reuse (comp-2) or on security
// certification (sec-1) rejects outright regardless of the total: no amount
// of compensating strength overrides those specific risks.
func DetermineVerdict(totalScore int, answers AnswerSet) models.Verdict {
	if answerIs(answers.Compliance, QuestionNoTrainingReuse, models.AnswerNo) ||
		answerIs(answers.Security, QuestionCertification, models.AnswerNo) {
		return models.VerdictRejected
	}

	switch {
	case totalScore >= 9:
		return models.VerdictApproved // 9-11 = low risk
	case totalScore >= 5:
		return models.VerdictConditional // 5-8 = medium risk
	default:
		return models.VerdictRejected // 0-4 = high risk
	}
}

// GenerateConditions evaluates the four remediation guards in fixed order:
// compliance, security, operational, trust. Each guard fires when its
// question was not answered "yes". The order is a documented contract; the
// UI and comparison views rely on it.
func GenerateConditions(answers AnswerSet) []string {
	conditions := []string{}

	if !answerIs(answers.Compliance, QuestionDataResidency, models.AnswerYes) {
		conditions = append(conditions, "Obtain written confirmation of data residency before deployment")
	}
	if !answerIs(answers.Security, QuestionMFA, models.AnswerYes) {
		conditions = append(conditions, "Implement MFA for all user accounts before rollout")
	}
	if !answerIs(answers.Operational, QuestionSLA, models.AnswerYes) {
		conditions = append(conditions, "Negotiate SLA terms before enterprise deployment")
	}
	if !answerIs(answers.Trust, QuestionEthicsPolicy, models.AnswerYes) {
		conditions = append(conditions, "Request vendor's AI ethics documentation before final approval")
	}

	return conditions
}

// ScoreAssessment is the single entry point for deriving scores, verdict and
// conditions from an answer set. Conditions exist only for a Conditional
// verdict; any other verdict gets an empty list even when guards would fire.
func ScoreAssessment(answers AnswerSet) ScoreResult {
	scores := AllScores(answers)
	verdict := DetermineVerdict(scores.TotalScore, answers)

	conditions := []string{}
	if verdict == models.VerdictConditional {
		conditions = GenerateConditions(answers)
	}

	return ScoreResult{
		ScoreSet:   scores,
		Verdict:    verdict,
		Conditions: conditions,
	}
}

// IsComplete reports whether every question in the catalog has a non-empty
// answer value somewhere in the four maps.
func IsComplete(answers AnswerSet) bool {
	combined := make(models.CategoryAnswers)
	for _, m := range []models.CategoryAnswers{answers.Compliance, answers.Security, answers.Operational, answers.Trust} {
		for id, answer := range m {
			combined[id] = answer
		}
	}

	for _, id := range AllQuestionIDs() {
		answer, ok := combined[id]
		if !ok || answer.Answer == "" {
			return false
		}
	}
	return true
}

// RequiredEvidence checks that every "yes" answer carries either a non-empty
// evidence reference or a non-empty note. It collects all violating question
// ids so callers can report every gap at once.
func RequiredEvidence(answers AnswerSet) EvidenceCheck {
	missing := []string{}

	groups := []struct {
		answers   models.CategoryAnswers
		questions []VettingQuestion
	}{
		{answers.Compliance, ComplianceQuestions},
		{answers.Security, SecurityQuestions},
		{answers.Operational, OperationalQuestions},
		{answers.Trust, TrustQuestions},
	}

	for _, group := range groups {
		for _, q := range group.questions {
			answer, ok := group.answers[q.ID]
			if !ok || answer.Answer != models.AnswerYes {
				continue
			}
			if emptyRef(answer.Evidence) && emptyRef(answer.Notes) {
				missing = append(missing, q.ID)
			}
		}
	}

	return EvidenceCheck{Valid: len(missing) == 0, MissingEvidence: missing}
}

func answerIs(answers models.CategoryAnswers, questionID string, value models.AnswerValue) bool {
	answer, ok := answers[questionID]
	return ok && answer.Answer == value
}

func emptyRef(s *string) bool {
	return s == nil || *s == ""
}
