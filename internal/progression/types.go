package progression

import "time"

// Counters is the persisted gamification state for one learner.
type Counters struct {
	TotalXP       int
	CurrentLevel  int
	StreakCount   int
	LongestStreak int

	// LastActivityDate is the day of the most recent completion.
	// The zero value means the learner has never completed an activity.
	LastActivityDate time.Time

	TotalQuizzes   int
	PerfectQuizzes int
}

// CompletionEvent describes one completed XP-earning activity.
type CompletionEvent struct {
	BaseXP         int
	IsPerfectScore bool
	ActivityDate   time.Time
}

// Outcome is the prospective result of applying a completion to counters.
// Nothing is committed until the caller persists NewCounters.
type Outcome struct {
	NewCounters Counters
	XPEarned    int
	LeveledUp   bool
	NewLevel    int // level after this completion
	StreakDay   int

	// BadgeEarned is set only when a BadgeChecker was supplied and reported one.
	BadgeEarned string
}

// BadgeChecker decides synchronously whether a completion unlocks a badge.
// It returns the badge ID, or "" when nothing unlocks.
type BadgeChecker interface {
	Check(before, after Counters) string
}
