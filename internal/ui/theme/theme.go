// Package theme holds the terminal palette and text styles of the CLI reports.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cbsetutor/internal/assessment"
	"github.com/abhisek/cbsetutor/internal/badges"
)

// Palette
var (
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Highlight = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// TierColor maps remediation priority to a traffic-light color.
func TierColor(t assessment.Tier) color.Color {
	switch t {
	case assessment.TierLow:
		return Success
	case assessment.TierMedium:
		return Warning
	case assessment.TierHigh:
		return Error
	default:
		return TextDim
	}
}

// RarityColor returns the display color of a badge rarity.
func RarityColor(r badges.Rarity) color.Color {
	switch r {
	case badges.RarityRare:
		return lipgloss.Color("#3B82F6")
	case badges.RarityEpic:
		return lipgloss.Color("#A855F7")
	case badges.RarityLegendary:
		return Accent
	default:
		return TextDim
	}
}
