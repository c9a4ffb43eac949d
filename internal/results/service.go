// Package results runs the post-assessment workflow: grading, subject
// lifecycle, XP and streak bookkeeping, badges and optional remediation.
package results

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/cbsetutor/internal/assessment"
	"github.com/abhisek/cbsetutor/internal/badges"
	"github.com/abhisek/cbsetutor/internal/locks"
	"github.com/abhisek/cbsetutor/internal/progression"
	"github.com/abhisek/cbsetutor/internal/store"
	"github.com/abhisek/cbsetutor/internal/tutor"
)

// ErrMissingUser is returned for a submission without a user ID.
var ErrMissingUser = errors.New("submission has no user id")

// Remediator produces study notes for the weak concepts of a graded attempt.
type Remediator interface {
	Remediate(ctx context.Context, subject string, result *assessment.GradingResult) ([]tutor.Note, error)
}

// Deps are the collaborators of a Service. Locker, Updater, Evaluator and
// Awards get in-process defaults when nil; Tutor is optional.
type Deps struct {
	Questions store.QuestionRepo
	Outcomes  store.OutcomeRepo
	Counters  store.CounterRepo
	Events    store.EventRepo
	Locker    locks.Locker
	Updater   *progression.Updater
	Evaluator *badges.Evaluator
	Awards    *badges.Service
	Tutor     Remediator
}

// Service completes assessments for learners.
type Service struct {
	questions store.QuestionRepo
	outcomes  store.OutcomeRepo
	counters  store.CounterRepo
	events    store.EventRepo
	locker    locks.Locker
	updater   *progression.Updater
	evaluator *badges.Evaluator
	awards    *badges.Service
	tutor     Remediator
	cfg       Config
	now       func() time.Time
}

// NewService creates a Service.
func NewService(d Deps, cfg Config) *Service {
	s := &Service{
		questions: d.Questions,
		outcomes:  d.Outcomes,
		counters:  d.Counters,
		events:    d.Events,
		locker:    d.Locker,
		updater:   d.Updater,
		evaluator: d.Evaluator,
		awards:    d.Awards,
		tutor:     d.Tutor,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
	}
	if s.locker == nil {
		s.locker = locks.NewLocal()
	}
	if s.evaluator == nil {
		s.evaluator = badges.NewEvaluator()
	}
	if s.updater == nil {
		s.updater = progression.NewUpdater(progression.DefaultConfig(), s.evaluator)
	}
	if s.awards == nil {
		s.awards = badges.NewService(d.Events)
	}
	return s
}

func (s *Service) location() *time.Location {
	if loc := s.updater.Config().Location; loc != nil {
		return loc
	}
	return time.UTC
}

// CompleteAssessment grades a submission and commits its consequences.
//
// The grading outcome is persisted before the counters. Counter updates run
// under a per-user lock and are retried from a fresh read when the stored
// row moved on, so a completion is applied to the counters exactly once.
// Badge and remediation failures are logged and leave the report without them.
func (s *Service) CompleteAssessment(ctx context.Context, sub Submission) (*Report, error) {
	if sub.UserID == "" {
		return nil, ErrMissingUser
	}
	completedAt := sub.CompletedAt
	if completedAt.IsZero() {
		completedAt = s.now()
	}

	questions, err := s.readQuestionSet(ctx, sub.SubjectID)
	if err != nil {
		return nil, err
	}
	for _, a := range sub.Answers {
		if err := a.Validate(); err != nil {
			slog.WarnContext(ctx, "inconsistent answer", "user", sub.UserID, "error", err)
		}
	}
	result := assessment.Grade(questions, assessment.AnswersByQuestion(sub.Answers))

	report := &Report{
		AttemptID:   uuid.NewString(),
		UserID:      sub.UserID,
		SubjectID:   sub.SubjectID,
		CompletedAt: completedAt,
		Result:      result,
		Badges:      []badges.Award{},
	}

	if err := s.persistOutcome(ctx, report); err != nil {
		return nil, err
	}

	event := progression.CompletionEvent{
		BaseXP:         s.cfg.XPPerCorrect * result.CorrectAnswers,
		IsPerfectScore: result.IsPerfect(),
		ActivityDate:   completedAt,
	}
	outcome, crossed, err := s.commitProgress(ctx, sub.UserID, event)
	if err != nil {
		return nil, err
	}
	report.Progress = outcome

	if len(crossed) > 0 {
		report.Badges = s.awardBadges(ctx, report.UserID, report.AttemptID, crossed)
	}
	// The updater only sees threshold crossings; the headline badge must be
	// one that was actually granted.
	report.Progress.BadgeEarned = rarestAwarded(report.Badges)

	if s.tutor != nil && len(result.CriticalGaps) > 0 {
		notes, err := s.tutor.Remediate(ctx, sub.SubjectID, result)
		if err != nil {
			slog.WarnContext(ctx, "remediation incomplete", "user", sub.UserID, "subject", sub.SubjectID, "error", err)
		}
		report.Remediation = notes
	}

	slog.InfoContext(ctx, "assessment completed",
		"user", sub.UserID,
		"subject", sub.SubjectID,
		"attempt", report.AttemptID,
		"score", result.ScorePercent,
		"xp", outcome.XPEarned,
		"level", outcome.NewLevel,
		"streak", outcome.StreakDay,
		"badges", len(report.Badges),
	)
	return report, nil
}

func (s *Service) readQuestionSet(ctx context.Context, subjectID string) ([]assessment.Question, error) {
	records, err := s.questions.ReadQuestionSet(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("read question set %s: %w", subjectID, err)
	}
	if len(records) == 0 {
		slog.WarnContext(ctx, "empty question set", "subject", subjectID)
	}
	questions := make([]assessment.Question, len(records))
	for i, r := range records {
		questions[i] = assessment.Question{ID: r.ID, ConceptTag: r.ConceptTag, CorrectOptionIndex: r.CorrectOptionIndex}
	}
	return questions, nil
}

// persistOutcome advances the subject lifecycle and records the attempt.
func (s *Service) persistOutcome(ctx context.Context, r *Report) error {
	current, err := s.outcomes.SubjectProgress(ctx, r.UserID, r.SubjectID)
	if err != nil {
		return fmt.Errorf("read subject progress: %w", err)
	}
	from := assessment.StatusGettingToKnowYou
	if current != nil {
		from = assessment.ParseStatus(current.Status)
	}
	to, _ := assessment.Advance(from)
	r.FromStatus, r.Status = from, to

	gaps := make([]string, len(r.Result.CriticalGaps))
	for i, cp := range r.Result.CriticalGaps {
		gaps[i] = cp.ConceptTag
	}

	err = s.outcomes.PersistGradingOutcome(ctx, store.GradingOutcomeData{
		AttemptID:      r.AttemptID,
		UserID:         r.UserID,
		SubjectID:      r.SubjectID,
		FromStatus:     string(from),
		ToStatus:       string(to),
		ScorePercent:   r.Result.ScorePercent,
		MasteryPercent: assessment.MasteryPercent(r.Result),
		TotalQuestions: r.Result.TotalQuestions,
		CorrectAnswers: r.Result.CorrectAnswers,
		SkippedAnswers: r.Result.SkippedAnswers,
		LearningPath:   r.Result.LearningPath,
		CriticalGaps:   gaps,
	})
	if err != nil {
		return fmt.Errorf("persist grading outcome: %w", err)
	}
	return nil
}

// commitProgress applies event to the learner's counters and stores the
// result. It returns the outcome and the badges crossed by the committed write.
func (s *Service) commitProgress(ctx context.Context, userID string, event progression.CompletionEvent) (progression.Outcome, []badges.Badge, error) {
	unlock, err := s.locker.Lock(ctx, "counters:"+userID)
	if err != nil {
		return progression.Outcome{}, nil, fmt.Errorf("lock counters for %s: %w", userID, err)
	}
	defer unlock()

	loc := s.location()
	for attempt := 1; ; attempt++ {
		rec, err := s.counters.ReadCounters(ctx, userID)
		if err != nil {
			return progression.Outcome{}, nil, fmt.Errorf("read counters: %w", err)
		}
		before, err := toCounters(rec, loc)
		if err != nil {
			return progression.Outcome{}, nil, err
		}

		out := s.updater.ApplyCompletion(before, event)
		err = s.counters.WriteCounters(ctx, fromCounters(userID, out.NewCounters, rec.Version, loc))
		if err == nil {
			return out, s.evaluator.Crossed(before, out.NewCounters), nil
		}
		if !errors.Is(err, store.ErrStaleCounters) || attempt >= s.cfg.MaxWriteAttempts {
			return progression.Outcome{}, nil, fmt.Errorf("write counters (attempt %d): %w", attempt, err)
		}
		slog.DebugContext(ctx, "counters changed during update, retrying", "user", userID, "attempt", attempt)
	}
}

// awardBadges records crossed badges the learner does not hold yet.
func (s *Service) awardBadges(ctx context.Context, userID, attemptID string, crossed []badges.Badge) []badges.Award {
	held, err := s.awards.Earned(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "skipping badge awards", "user", userID, "error", err)
		return []badges.Award{}
	}
	var fresh []badges.Badge
	for _, b := range crossed {
		if !held[b.ID] {
			fresh = append(fresh, b)
		}
	}
	awarded, err := s.awards.Award(ctx, userID, attemptID, fresh)
	if err != nil {
		slog.WarnContext(ctx, "badge award failed", "user", userID, "attempt", attemptID, "error", err)
	}
	return awarded
}

func rarestAwarded(awards []badges.Award) string {
	granted := make([]badges.Badge, len(awards))
	for i, a := range awards {
		granted[i] = a.Badge
	}
	return badges.Rarest(granted)
}

// Progress returns the learner's counters, subjects, badges and recent attempts.
func (s *Service) Progress(ctx context.Context, userID string) (*ProgressView, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	rec, err := s.counters.ReadCounters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read counters: %w", err)
	}
	c, err := toCounters(rec, s.location())
	if err != nil {
		return nil, err
	}

	subjects, err := s.outcomes.ListSubjectProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subject progress: %w", err)
	}

	view := &ProgressView{
		UserID:        userID,
		Counters:      c,
		XPToNextLevel: s.updater.Config().LevelXPStep*s.updater.Level(c.TotalXP) - c.TotalXP,
		Subjects:      subjects,
		Badges:        []store.BadgeEventRecord{},
		Recent:        []store.AssessmentEventRecord{},
	}
	if view.Subjects == nil {
		view.Subjects = []store.SubjectProgressRecord{}
	}
	if s.events == nil {
		return view, nil
	}

	if view.Badges, err = s.events.QueryBadgeEvents(ctx, userID, store.QueryOpts{}); err != nil {
		return nil, fmt.Errorf("query badges: %w", err)
	}
	if view.Recent, err = s.events.QueryAssessmentEvents(ctx, userID, store.QueryOpts{Limit: s.cfg.RecentAttempts}); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	if view.Badges == nil {
		view.Badges = []store.BadgeEventRecord{}
	}
	if view.Recent == nil {
		view.Recent = []store.AssessmentEventRecord{}
	}
	return view, nil
}
