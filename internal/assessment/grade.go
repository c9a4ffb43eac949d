package assessment

import "math"

// Config holds the accuracy cutoffs used to tier concepts.
type Config struct {
	// StrongThreshold is the minimum accuracy percent for a strong concept.
	StrongThreshold int
	// ReviewThreshold is the minimum accuracy percent for a needs-review concept.
	// Anything below it is a critical gap.
	ReviewThreshold int
}

// DefaultConfig returns the product cutoffs: 75% strong, 40% review.
func DefaultConfig() Config {
	return Config{
		StrongThreshold: 75,
		ReviewThreshold: 40,
	}
}

// TierFor maps an accuracy percent to a priority tier.
func (c Config) TierFor(accuracyPercent int) Tier {
	switch {
	case accuracyPercent >= c.StrongThreshold:
		return TierLow
	case accuracyPercent >= c.ReviewThreshold:
		return TierMedium
	default:
		return TierHigh
	}
}

// PercentOf returns round(100*part/whole) with halves rounded away from zero.
// A zero whole yields 0.
func PercentOf(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// Grade scores an assessment with the default cutoffs.
func Grade(questions []Question, answers map[string]Answer) *GradingResult {
	return GradeWith(DefaultConfig(), questions, answers)
}

// conceptGroup accumulates per-tag counts while scanning questions.
type conceptGroup struct {
	tag       string
	total     int
	correct   int
	answered  int
	timeSpent float64
}

// GradeWith scores an assessment, tiers each concept and builds the learning path.
//
// Questions without an answer count as skipped. Answers for unknown question
// IDs are ignored. An empty question set yields an all-zero result.
func GradeWith(cfg Config, questions []Question, answers map[string]Answer) *GradingResult {
	res := &GradingResult{
		StrongConcepts: []ConceptPerformance{},
		NeedsReview:    []ConceptPerformance{},
		CriticalGaps:   []ConceptPerformance{},
		LearningPath:   []string{},
		Concepts:       []ConceptPerformance{},
	}

	groups := make(map[string]*conceptGroup)
	var order []*conceptGroup

	for _, q := range questions {
		g, ok := groups[q.ConceptTag]
		if !ok {
			g = &conceptGroup{tag: q.ConceptTag}
			groups[q.ConceptTag] = g
			order = append(order, g)
		}

		res.TotalQuestions++
		g.total++

		a, ok := answers[q.ID]
		if !ok || a.IsSkipped() {
			res.SkippedAnswers++
			continue
		}

		g.answered++
		g.timeSpent += a.TimeSpentSeconds
		if a.IsCorrect(q) {
			res.CorrectAnswers++
			g.correct++
		}
	}

	res.ScorePercent = PercentOf(res.CorrectAnswers, res.TotalQuestions)

	for _, g := range order {
		cp := ConceptPerformance{
			ConceptTag:      g.tag,
			TotalQuestions:  g.total,
			CorrectCount:    g.correct,
			AccuracyPercent: PercentOf(g.correct, g.total),
		}
		if g.answered > 0 {
			cp.AverageTimeSeconds = g.timeSpent / float64(g.answered)
		}
		cp.Tier = cfg.TierFor(cp.AccuracyPercent)

		res.Concepts = append(res.Concepts, cp)
		switch cp.Tier {
		case TierLow:
			res.StrongConcepts = append(res.StrongConcepts, cp)
		case TierMedium:
			res.NeedsReview = append(res.NeedsReview, cp)
		default:
			res.CriticalGaps = append(res.CriticalGaps, cp)
		}
	}

	for _, bucket := range [][]ConceptPerformance{res.CriticalGaps, res.NeedsReview, res.StrongConcepts} {
		for _, cp := range bucket {
			res.LearningPath = append(res.LearningPath, cp.ConceptTag)
		}
	}

	return res
}
