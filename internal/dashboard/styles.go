package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"scrapewatch/internal/ui"
)

// Utilization thresholds for metric severity coloring.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// Base styles for the dashboard.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(ui.ColorSecondary).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary)

	HealthyStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	CriticalStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorWarning).
			Padding(0, 2)
)

// utilizationStyle picks a severity style for a percentage.
func utilizationStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= CriticalThreshold:
		return CriticalStyle
	case percent >= WarningThreshold:
		return WarningStyle
	default:
		return HealthyStyle
	}
}
