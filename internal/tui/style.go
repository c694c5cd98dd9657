// Package tui provides the Bubble Tea trainer interface: the topic hub,
// the challenge picker, and the post-session result screen.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vimkata/internal/challenge"
)

var (
	titleBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#3FB950")).
			Bold(true).
			Padding(0, 1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	darkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	boldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#3A3A3A")).
			Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950")).Bold(true)
	newBestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4DD0E1")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

var categoryColors = map[challenge.Category]lipgloss.Color{
	challenge.CategoryBeginner:     lipgloss.Color("#4DD0E1"),
	challenge.CategoryIntermediate: lipgloss.Color("#5B8DEF"),
	challenge.CategoryAdvanced:     lipgloss.Color("#C678DD"),
	challenge.CategoryLegendary:    lipgloss.Color("#FFA500"),
	challenge.CategoryFreestyle:    lipgloss.Color("#FF4D4F"),
}

func categoryBadge(cat challenge.Category) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1A1A1A")).
		Background(categoryColors[cat]).
		Bold(true).
		Padding(0, 1).
		Render(cat.String())
}

func categoryHeaderStyle(cat challenge.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(categoryColors[cat]).Bold(true)
}

// gradeStyle colors a grade badge: A stands out, F reads as failure.
func gradeStyle(g challenge.Grade) lipgloss.Style {
	switch g {
	case challenge.GradeA:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	case challenge.GradeF:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#4DD0E1"))
	}
}

// gradeBadge renders "[A]".."[F]", or a gray "[-]" when there is no grade.
func gradeBadge(g *challenge.Grade) string {
	if g == nil {
		return dimStyle.Render("[-]")
	}
	return gradeStyle(*g).Render("[" + g.String() + "]")
}
