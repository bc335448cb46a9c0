package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// formatBytes renders a byte count in binary units, one decimal above KiB.
func formatBytes(n int64) string {
	const (
		kib = 1024
		mib = 1024 * kib
		gib = 1024 * mib
	)
	switch {
	case n >= gib:
		return fmt.Sprintf("%.1fG", float64(n)/float64(gib))
	case n >= mib:
		return fmt.Sprintf("%.1fM", float64(n)/float64(mib))
	case n >= kib:
		return fmt.Sprintf("%dK", n/kib)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

// formatDuration renders a duration in the largest two useful units.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d >= 24*time.Hour:
		days := int(d.Hours()) / 24
		hours := int(d.Hours()) % 24
		return fmt.Sprintf("%dd%dh", days, hours)
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}

// errorCountStyle colors an error total: zero is healthy, anything else red.
func errorCountStyle(count int) lipgloss.Style {
	if count == 0 {
		return HealthyStyle
	}
	return CriticalStyle
}
