package store

import (
	"context"
	"errors"
	"time"
)

// ErrStaleCounters is returned by WriteCounters when the stored row changed
// since it was read. Callers re-read and retry.
var ErrStaleCounters = errors.New("progression counters changed since read")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// DateLayout is the storage format of civil dates.
const DateLayout = "2006-01-02"

// CountersRecord is the persisted progression state of one learner.
// Version is zero for a learner with no stored row.
type CountersRecord struct {
	UserID           string
	TotalXP          int
	CurrentLevel     int
	StreakCount      int
	LongestStreak    int
	LastActivityDate string // DateLayout, empty when never active
	TotalQuizzes     int
	PerfectQuizzes   int
	Version          int64
	UpdatedAt        time.Time
}

// CounterRepo reads and conditionally writes progression counters.
type CounterRepo interface {
	// ReadCounters returns the stored counters, or a zero record at level 1
	// with Version 0 when the learner has none.
	ReadCounters(ctx context.Context, userID string) (*CountersRecord, error)

	// WriteCounters stores rec if the row still has rec.Version, then bumps
	// rec.Version. It returns ErrStaleCounters on a lost race.
	WriteCounters(ctx context.Context, rec *CountersRecord) error
}

// QuestionRecord is one question of a subject's assessment.
type QuestionRecord struct {
	ID                 string
	ConceptTag         string
	CorrectOptionIndex int
}

// QuestionRepo stores question sets keyed by subject.
type QuestionRepo interface {
	// SaveQuestionSet replaces the subject's questions, preserving order.
	SaveQuestionSet(ctx context.Context, subjectID string, questions []QuestionRecord) error

	// ReadQuestionSet returns the subject's questions in order, empty if none.
	ReadQuestionSet(ctx context.Context, subjectID string) ([]QuestionRecord, error)

	// ListSubjects returns every subject with a stored question set.
	ListSubjects(ctx context.Context) ([]string, error)
}

// GradingOutcomeData captures a graded attempt and the subject's new state.
type GradingOutcomeData struct {
	AttemptID      string
	UserID         string
	SubjectID      string
	FromStatus     string
	ToStatus       string
	ScorePercent   int
	MasteryPercent int
	TotalQuestions int
	CorrectAnswers int
	SkippedAnswers int
	LearningPath   []string
	CriticalGaps   []string
}

// SubjectProgressRecord is the learner's current state in one subject.
type SubjectProgressRecord struct {
	UserID         string
	SubjectID      string
	Status         string
	MasteryPercent int
	LastScore      int
	Attempts       int
	UpdatedAt      time.Time
}

// OutcomeRepo persists grading outcomes.
type OutcomeRepo interface {
	// PersistGradingOutcome appends the assessment event and upserts the
	// subject progress row in one transaction.
	PersistGradingOutcome(ctx context.Context, data GradingOutcomeData) error

	// SubjectProgress returns the learner's state in a subject, or nil.
	SubjectProgress(ctx context.Context, userID, subjectID string) (*SubjectProgressRecord, error)

	// ListSubjectProgress returns the learner's state in every subject.
	ListSubjectProgress(ctx context.Context, userID string) ([]SubjectProgressRecord, error)
}

// AssessmentEventRecord is a stored graded attempt.
type AssessmentEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GradingOutcomeData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageRecord is the token usage of one purpose and model pair.
type LLMUsageRecord struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// BadgeEventData captures a badge award.
type BadgeEventData struct {
	UserID    string
	BadgeID   string
	Rarity    string
	AttemptID string
	Reason    string
}

// BadgeEventRecord is a stored badge award.
type BadgeEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	BadgeEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single LLM request event by ID, or nil.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsage aggregates LLM request events by purpose and model.
	LLMUsage(ctx context.Context) ([]LLMUsageRecord, error)

	// AppendBadgeEvent records a badge award.
	AppendBadgeEvent(ctx context.Context, data BadgeEventData) error

	// QueryBadgeEvents returns the learner's badge awards, newest first.
	QueryBadgeEvents(ctx context.Context, userID string, opts QueryOpts) ([]BadgeEventRecord, error)

	// QueryAssessmentEvents returns the learner's graded attempts, newest first.
	QueryAssessmentEvents(ctx context.Context, userID string, opts QueryOpts) ([]AssessmentEventRecord, error)
}
