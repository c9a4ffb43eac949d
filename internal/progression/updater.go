package progression

import "time"

// Level returns floor(xp/step)+1. Negative XP stays at level 1 and a
// non-positive step falls back to DefaultLevelXPStep.
func Level(xp, step int) int {
	if step <= 0 {
		step = DefaultLevelXPStep
	}
	if xp < 0 {
		xp = 0
	}
	return xp/step + 1
}

// Updater derives XP, level, streak and badge signals from completions.
// It performs no I/O; callers own reading and persisting Counters.
type Updater struct {
	cfg    Config
	badges BadgeChecker
}

// NewUpdater creates an Updater. badges may be nil.
func NewUpdater(cfg Config, badges BadgeChecker) *Updater {
	if cfg.LevelXPStep <= 0 {
		cfg.LevelXPStep = DefaultLevelXPStep
	}
	return &Updater{cfg: cfg, badges: badges}
}

// Config returns the updater's configuration.
func (u *Updater) Config() Config {
	return u.cfg
}

// Level returns the level for xp under this updater's step.
func (u *Updater) Level(xp int) int {
	return Level(xp, u.cfg.LevelXPStep)
}

// ApplyCompletion computes the counters that result from one completion.
//
// The result is a prospective delta based on the given snapshot. Callers must
// commit NewCounters atomically with the read that produced c; applying the
// same completion to two stale snapshots double-counts XP.
func (u *Updater) ApplyCompletion(c Counters, e CompletionEvent) Outcome {
	bonus := 0
	if e.IsPerfectScore {
		bonus = u.cfg.PerfectBonusXP
	}
	xpEarned := e.BaseXP + bonus

	loc := u.cfg.location()
	next := c
	next.TotalXP = c.TotalXP + xpEarned

	oldLevel := u.Level(c.TotalXP)
	newLevel := u.Level(next.TotalXP)
	next.CurrentLevel = max(c.CurrentLevel, newLevel)

	streak := nextStreak(c, e.ActivityDate, loc)
	next.StreakCount = streak
	next.LongestStreak = max(c.LongestStreak, streak)
	if c.LastActivityDate.IsZero() || DayGap(c.LastActivityDate, e.ActivityDate, loc) > 0 {
		y, m, d := e.ActivityDate.In(loc).Date()
		next.LastActivityDate = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	next.TotalQuizzes++
	if e.IsPerfectScore {
		next.PerfectQuizzes++
	}

	out := Outcome{
		NewCounters: next,
		XPEarned:    xpEarned,
		LeveledUp:   newLevel > oldLevel,
		NewLevel:    next.CurrentLevel,
		StreakDay:   streak,
	}
	if u.badges != nil {
		out.BadgeEarned = u.badges.Check(c, next)
	}
	return out
}
