package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"scrapewatch/internal/config"
	"scrapewatch/internal/errors"
	"scrapewatch/internal/logger"
)

// Run starts the interactive dashboard and blocks until the operator quits.
func Run(collector *Collector, cfg *config.Config, log logger.Logger) error {
	p := tea.NewProgram(NewModel(collector, cfg, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "Dashboard terminated unexpectedly")
	}
	return nil
}
