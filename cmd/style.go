package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"conectads/social/internal/profile"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	starStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func heading(s string) string {
	return headingStyle.Render(s)
}

// stars renders a quality as filled and empty stars
func stars(q int) string {
	if q < profile.MinQuality {
		q = 0
	}
	if q > profile.MaxQuality {
		q = profile.MaxQuality
	}
	return starStyle.Render(strings.Repeat("★", q)) + dimStyle.Render(strings.Repeat("☆", profile.MaxQuality-q))
}

// bar renders value/total as a fixed-width bar
func bar(value, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	n := value * width / total
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}
