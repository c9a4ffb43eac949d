package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cbsetutor/internal/assessment"
	"github.com/abhisek/cbsetutor/internal/badges"
	"github.com/abhisek/cbsetutor/internal/results"
	"github.com/abhisek/cbsetutor/internal/ui/components"
	"github.com/abhisek/cbsetutor/internal/ui/theme"
)

const reportWidth = 56

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderResult(r *assessment.GradingResult) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("Score %d%%", r.ScorePercent)))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d correct, %d skipped",
		r.CorrectAnswers, r.TotalQuestions, r.SkippedAnswers)))
	b.WriteString("\n")

	if len(r.Concepts) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Concepts"))
	b.WriteString("\n")
	for _, cp := range r.Concepts {
		label := lipgloss.NewStyle().Foreground(theme.TierColor(cp.Tier)).Render(fmt.Sprintf("%-12s", cp.Tier.Label()))
		bar := components.NewProgressBar(truncate(cp.ConceptTag, 20), float64(cp.AccuracyPercent)/100, true, reportWidth-14)
		fmt.Fprintf(&b, "%s  %s\n", label, bar.View())
	}

	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Learning path"))
	b.WriteString("\n")
	for i, tag := range r.LearningPath {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, tag)
	}
	return b.String()
}

func renderReport(rep *results.Report) string {
	var b strings.Builder

	b.WriteString(theme.Card.Width(reportWidth).Render(renderResult(rep.Result)))
	b.WriteString("\n")

	p := rep.Progress
	fmt.Fprintf(&b, "%s  %s\n", theme.Highlight.Render(fmt.Sprintf("+%d XP", p.XPEarned)),
		theme.Body.Render(fmt.Sprintf("Level %d, %d day streak", p.NewLevel, p.StreakDay)))
	if p.LeveledUp {
		b.WriteString(theme.Highlight.Render(fmt.Sprintf("Level up! You reached level %d.", p.NewLevel)))
		b.WriteString("\n")
	}
	if rep.FromStatus != rep.Status {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%s is now in %q", rep.SubjectID, rep.Status)))
		b.WriteString("\n")
	}

	for _, a := range rep.Badges {
		b.WriteString(renderBadge(a.Badge.Name, a.Badge.Rarity, a.Badge.Description))
		b.WriteString("\n")
	}

	for _, n := range rep.Remediation {
		var nb strings.Builder
		nb.WriteString(theme.Heading.Render(n.Title))
		nb.WriteString("\n")
		nb.WriteString(n.Explanation)
		nb.WriteString("\n\n")
		nb.WriteString(n.WorkedExample)
		nb.WriteString("\n\n")
		nb.WriteString(theme.Body.Render("Try: " + n.PracticeQuestion.Text))
		for i, opt := range n.PracticeQuestion.Options {
			fmt.Fprintf(&nb, "\n  %c) %s", 'a'+i, opt)
		}
		b.WriteString(theme.Card.Width(reportWidth).Render(nb.String()))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBadge(name string, rarity badges.Rarity, description string) string {
	tag := lipgloss.NewStyle().Bold(true).Foreground(theme.RarityColor(rarity)).
		Render(fmt.Sprintf("[%s]", rarity.DisplayName()))
	return fmt.Sprintf("%s %s  %s", tag, theme.Body.Render(name), theme.Hint.Render(description))
}

func renderProgress(v *results.ProgressView, levelStep int) string {
	var b strings.Builder
	c := v.Counters

	b.WriteString(theme.Title.Render(v.UserID))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Level %d  %d XP  (%d to next level)\n", c.CurrentLevel, c.TotalXP, v.XPToNextLevel)
	if levelStep > 0 {
		into := float64(levelStep-v.XPToNextLevel) / float64(levelStep)
		b.WriteString(components.NewProgressBar("XP", into, true, reportWidth).View())
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Streak %d days (best %d)  Quizzes %d  Perfect %d\n",
		c.StreakCount, c.LongestStreak, c.TotalQuizzes, c.PerfectQuizzes)

	if len(v.Subjects) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Subjects"))
		b.WriteString("\n")
		for _, s := range v.Subjects {
			bar := components.NewProgressBar(fmt.Sprintf("%-16s", truncate(s.SubjectID, 16)), float64(s.MasteryPercent)/100, true, reportWidth-22)
			fmt.Fprintf(&b, "%s  %s\n", bar.View(), theme.Hint.Render(fmt.Sprintf("%d attempts, %s", s.Attempts, s.Status)))
		}
	}

	if len(v.Badges) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Badges"))
		b.WriteString("\n")
		for _, e := range v.Badges {
			name, desc := e.BadgeID, e.Reason
			if badge, ok := badges.Lookup(e.BadgeID); ok {
				name = badge.Name
			}
			b.WriteString(renderBadge(name, badges.Rarity(e.Rarity), desc))
			b.WriteString("\n")
		}
	}

	if len(v.Recent) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Recent attempts"))
		b.WriteString("\n")
		for _, a := range v.Recent {
			fmt.Fprintf(&b, "%s  %-16s %3d%%  %d/%d\n",
				a.Timestamp.Local().Format("2006-01-02 15:04"), truncate(a.SubjectID, 16),
				a.ScorePercent, a.CorrectAnswers, a.TotalQuestions)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
