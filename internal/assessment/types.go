package assessment

import "fmt"

// Question is a single multiple-choice item in an assessment.
// Many questions may share a ConceptTag.
type Question struct {
	ID                 string `json:"id"`
	ConceptTag         string `json:"conceptTag"`
	CorrectOptionIndex int    `json:"correctOptionIndex"`
}

// Answer is the learner's response to one question.
// SelectedOptionIndex is nil exactly when Skipped is true.
type Answer struct {
	QuestionID          string  `json:"questionId"`
	SelectedOptionIndex *int    `json:"selectedOptionIndex"`
	TimeSpentSeconds    float64 `json:"timeSpentSeconds"`
	Skipped             bool    `json:"skipped"`
}

// Validate reports whether the answer honors the selection/skip invariant.
func (a Answer) Validate() error {
	switch {
	case a.Skipped && a.SelectedOptionIndex != nil:
		return fmt.Errorf("answer %q: skipped answer has a selected option", a.QuestionID)
	case !a.Skipped && a.SelectedOptionIndex == nil:
		return fmt.Errorf("answer %q: no option selected and not marked skipped", a.QuestionID)
	case a.TimeSpentSeconds < 0:
		return fmt.Errorf("answer %q: negative time spent", a.QuestionID)
	}
	return nil
}

// IsSkipped treats a missing selection as a skip even if the flag was not set.
func (a Answer) IsSkipped() bool {
	return a.Skipped || a.SelectedOptionIndex == nil
}

// IsCorrect returns true if the answer selects the question's correct option.
func (a Answer) IsCorrect(q Question) bool {
	if a.IsSkipped() {
		return false
	}
	return *a.SelectedOptionIndex == q.CorrectOptionIndex
}

// Tier is the remediation priority of a concept. High needs the most attention.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Label returns the learner-facing bucket name for the tier.
func (t Tier) Label() string {
	switch t {
	case TierLow:
		return "Strong"
	case TierMedium:
		return "Needs review"
	case TierHigh:
		return "Critical gap"
	default:
		return string(t)
	}
}

// ConceptPerformance aggregates results for every question sharing a concept tag.
type ConceptPerformance struct {
	ConceptTag         string  `json:"conceptTag"`
	TotalQuestions     int     `json:"totalQuestions"`
	CorrectCount       int     `json:"correctCount"`
	AverageTimeSeconds float64 `json:"averageTimeSeconds"`
	AccuracyPercent    int     `json:"accuracyPercent"`
	Tier               Tier    `json:"tier"`
}

// GradingResult is the outcome of grading one completed assessment.
type GradingResult struct {
	ScorePercent   int `json:"scorePercent"`
	TotalQuestions int `json:"totalQuestions"`
	CorrectAnswers int `json:"correctAnswers"`
	SkippedAnswers int `json:"skippedAnswers"`

	StrongConcepts []ConceptPerformance `json:"strongConcepts"`
	NeedsReview    []ConceptPerformance `json:"needsReview"`
	CriticalGaps   []ConceptPerformance `json:"criticalGaps"`

	// LearningPath lists concept tags, most urgent first.
	LearningPath []string `json:"learningPath"`

	// Concepts holds every concept group in first-encountered order.
	Concepts []ConceptPerformance `json:"concepts"`
}

// IsPerfect returns true if every question was answered correctly.
func (r *GradingResult) IsPerfect() bool {
	return r.TotalQuestions > 0 && r.CorrectAnswers == r.TotalQuestions
}

// AnswersByQuestion indexes answers by question ID. Later duplicates win.
func AnswersByQuestion(answers []Answer) map[string]Answer {
	m := make(map[string]Answer, len(answers))
	for _, a := range answers {
		m[a.QuestionID] = a
	}
	return m
}
