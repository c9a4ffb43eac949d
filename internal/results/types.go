package results

import (
	"time"

	"github.com/abhisek/cbsetutor/internal/assessment"
	"github.com/abhisek/cbsetutor/internal/badges"
	"github.com/abhisek/cbsetutor/internal/progression"
	"github.com/abhisek/cbsetutor/internal/store"
	"github.com/abhisek/cbsetutor/internal/tutor"
)

// Submission is a completed assessment handed in by a learner.
type Submission struct {
	UserID      string              `json:"userId"`
	SubjectID   string              `json:"subjectId"`
	Answers     []assessment.Answer `json:"answers"`
	CompletedAt time.Time           `json:"completedAt"`
}

// Report is everything the results screen shows after a completion.
type Report struct {
	AttemptID   string                    `json:"attemptId"`
	UserID      string                    `json:"userId"`
	SubjectID   string                    `json:"subjectId"`
	CompletedAt time.Time                 `json:"completedAt"`
	Result      *assessment.GradingResult `json:"result"`
	Progress    progression.Outcome       `json:"progress"`
	FromStatus  assessment.SubjectStatus  `json:"fromStatus"`
	Status      assessment.SubjectStatus  `json:"status"`
	Badges      []badges.Award            `json:"badges"`
	Remediation []tutor.Note              `json:"remediation,omitempty"`
}

// ProgressView is the parent-portal summary of one learner.
type ProgressView struct {
	UserID        string                        `json:"userId"`
	Counters      progression.Counters          `json:"counters"`
	XPToNextLevel int                           `json:"xpToNextLevel"`
	Subjects      []store.SubjectProgressRecord `json:"subjects"`
	Badges        []store.BadgeEventRecord      `json:"badges"`
	Recent        []store.AssessmentEventRecord `json:"recentAttempts"`
}
