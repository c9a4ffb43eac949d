package assessment

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// buildAssessment turns generated integers into questions and answers.
// choice -2 leaves the question unanswered, -1 skips it, otherwise it is the selected option.
func buildAssessment(tagIdx, correct, choice []int) ([]Question, map[string]Answer) {
	n := len(tagIdx)
	if len(correct) < n {
		n = len(correct)
	}
	if len(choice) < n {
		n = len(choice)
	}

	qs := make([]Question, 0, n)
	answers := make(map[string]Answer, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("q%d", i)
		qs = append(qs, Question{
			ID:                 id,
			ConceptTag:         fmt.Sprintf("concept-%d", tagIdx[i]),
			CorrectOptionIndex: correct[i],
		})
		switch c := choice[i]; {
		case c == -2:
		case c == -1:
			answers[id] = Answer{QuestionID: id, Skipped: true}
		default:
			answers[id] = Answer{QuestionID: id, SelectedOptionIndex: &c, TimeSpentSeconds: float64(i)}
		}
	}
	return qs, answers
}

func gradingProperties(t *testing.T) *gopter.Properties {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

var (
	genTags    = gen.SliceOf(gen.IntRange(0, 5))
	genCorrect = gen.SliceOf(gen.IntRange(0, 3))
	genChoice  = gen.SliceOf(gen.IntRange(-2, 3))
)

func TestGradeProperties(t *testing.T) {
	properties := gradingProperties(t)

	properties.Property("score is a bounded percent", prop.ForAll(
		func(tagIdx, correct, choice []int) bool {
			res := Grade(buildAssessment(tagIdx, correct, choice))
			return res.ScorePercent >= 0 && res.ScorePercent <= 100 &&
				res.CorrectAnswers <= res.TotalQuestions &&
				res.CorrectAnswers+res.SkippedAnswers <= res.TotalQuestions
		},
		genTags, genCorrect, genChoice,
	))

	properties.Property("buckets partition the distinct concept tags", prop.ForAll(
		func(tagIdx, correct, choice []int) bool {
			qs, answers := buildAssessment(tagIdx, correct, choice)
			res := Grade(qs, answers)

			distinct := map[string]bool{}
			for _, q := range qs {
				distinct[q.ConceptTag] = true
			}

			seen := map[string]int{}
			for _, bucket := range [][]ConceptPerformance{res.StrongConcepts, res.NeedsReview, res.CriticalGaps} {
				for _, cp := range bucket {
					seen[cp.ConceptTag]++
				}
			}
			if len(seen) != len(distinct) {
				return false
			}
			for tag, count := range seen {
				if count != 1 || !distinct[tag] {
					return false
				}
			}
			return true
		},
		genTags, genCorrect, genChoice,
	))

	properties.Property("learning path orders gaps, then review, then strong", prop.ForAll(
		func(tagIdx, correct, choice []int) bool {
			res := Grade(buildAssessment(tagIdx, correct, choice))
			if len(res.LearningPath) != len(res.Concepts) {
				return false
			}

			rank := map[Tier]int{TierHigh: 0, TierMedium: 1, TierLow: 2}
			tierOf := map[string]Tier{}
			for _, cp := range res.Concepts {
				tierOf[cp.ConceptTag] = cp.Tier
			}
			for i := 1; i < len(res.LearningPath); i++ {
				if rank[tierOf[res.LearningPath[i-1]]] > rank[tierOf[res.LearningPath[i]]] {
					return false
				}
			}
			return true
		},
		genTags, genCorrect, genChoice,
	))

	properties.Property("grading is deterministic", prop.ForAll(
		func(tagIdx, correct, choice []int) bool {
			qs, answers := buildAssessment(tagIdx, correct, choice)
			return reflect.DeepEqual(Grade(qs, answers), Grade(qs, answers))
		},
		genTags, genCorrect, genChoice,
	))

	properties.TestingRun(t)
}
