package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/cbsetutor/internal/assessment"
)

const noteSystemPrompt = `You are a patient, encouraging tutor for Indian school students following the CBSE syllabus. A student has just finished a diagnostic assessment and is weak in one concept. Write a short, clear lesson that closes the gap.`

func buildNoteUserMessage(subject string, cp assessment.ConceptPerformance, result *assessment.GradingResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "Concept: %s\n", cp.ConceptTag)
	fmt.Fprintf(&b, "Questions on this concept: %d, correct: %d (%d%%)\n",
		cp.TotalQuestions, cp.CorrectCount, cp.AccuracyPercent)
	if cp.AverageTimeSeconds > 0 {
		fmt.Fprintf(&b, "Average time per answered question: %.0f seconds\n", cp.AverageTimeSeconds)
	}
	fmt.Fprintf(&b, "Overall assessment score: %d%% (%d of %d, %d skipped)\n",
		result.ScorePercent, result.CorrectAnswers, result.TotalQuestions, result.SkippedAnswers)

	if len(result.StrongConcepts) > 0 {
		tags := make([]string, len(result.StrongConcepts))
		for i, s := range result.StrongConcepts {
			tags[i] = s.ConceptTag
		}
		fmt.Fprintf(&b, "Concepts the student already handles well: %s\n", strings.Join(tags, ", "))
	}

	b.WriteString(`
Instructions:
1. Explain the concept in 3-5 sentences of plain language. Build on the concepts the student already knows where it helps.
2. Show one complete worked example with numbered steps, in the style of a CBSE board question.
3. Write one multiple-choice practice question that is EASIER than a board question, with 2-4 options and exactly one correct option.
4. Briefly explain why the correct option is right.
5. Use plain ASCII text for all math. No LaTeX. Use / for fractions, * for multiplication, ^ for powers.`)

	return b.String()
}

const chatSystemPrompt = `You are a friendly CBSE tutor chatting with a student. Answer the question directly and briefly, then offer one follow-up hint. If the question is not about school learning, gently steer back to studies. Use plain ASCII text for math.`
