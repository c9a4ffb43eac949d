package tutor

import "github.com/abhisek/cbsetutor/internal/assessment"

// Note is a short AI-written remediation lesson for one weak concept.
type Note struct {
	ConceptTag       string
	Tier             assessment.Tier
	AccuracyPercent  int
	Title            string
	Explanation      string
	WorkedExample    string
	PracticeQuestion PracticeQuestion
}

// PracticeQuestion is a single multiple-choice check embedded in a note.
type PracticeQuestion struct {
	Text               string
	Options            []string
	CorrectOptionIndex int
	Explanation        string
}
