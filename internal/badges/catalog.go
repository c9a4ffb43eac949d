package badges

import (
	"fmt"

	"github.com/abhisek/cbsetutor/internal/progression"
)

// Badge is a milestone a learner can unlock once.
type Badge struct {
	ID          string
	Name        string
	Description string
	Rarity      Rarity

	// metric extracts the counter this badge tracks; threshold unlocks it.
	metric    func(progression.Counters) int
	threshold int
}

// reached reports whether c meets the badge milestone.
func (b Badge) reached(c progression.Counters) bool {
	return b.metric(c) >= b.threshold
}

func quizzes(c progression.Counters) int  { return c.TotalQuizzes }
func perfects(c progression.Counters) int { return c.PerfectQuizzes }
func streak(c progression.Counters) int   { return c.StreakCount }
func level(c progression.Counters) int    { return c.CurrentLevel }
func totalXP(c progression.Counters) int  { return c.TotalXP }

func streakBadge(days int, name string) Badge {
	return Badge{
		ID:          fmt.Sprintf("streak-%d", days),
		Name:        name,
		Description: fmt.Sprintf("Learn %d days in a row", days),
		Rarity:      StreakRarity(days),
		metric:      streak,
		threshold:   days,
	}
}

// Catalog returns every badge in display order.
func Catalog() []Badge {
	return []Badge{
		{ID: "first-quiz", Name: "First Steps", Description: "Complete your first assessment",
			Rarity: RarityCommon, metric: quizzes, threshold: 1},
		{ID: "perfect-1", Name: "Flawless", Description: "Score 100% on an assessment",
			Rarity: RarityRare, metric: perfects, threshold: 1},
		{ID: "perfect-10", Name: "Perfectionist", Description: "Score 100% on 10 assessments",
			Rarity: RarityEpic, metric: perfects, threshold: 10},
		streakBadge(3, "Getting Started"),
		streakBadge(7, "Week Warrior"),
		streakBadge(30, "Monthly Master"),
		{ID: "level-5", Name: "Rising Star", Description: "Reach level 5",
			Rarity: RarityRare, metric: level, threshold: 5},
		{ID: "level-10", Name: "Scholar", Description: "Reach level 10",
			Rarity: RarityEpic, metric: level, threshold: 10},
		{ID: "xp-1000", Name: "Powerhouse", Description: "Earn 1,000 total XP",
			Rarity: RarityRare, metric: totalXP, threshold: 1000},
	}
}

// Lookup returns the catalog badge with the given ID.
func Lookup(id string) (Badge, bool) {
	for _, b := range Catalog() {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
