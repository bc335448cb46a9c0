package dashboard

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyRefresh = "r"
	KeyFollow  = "l"
	KeyAttach  = "s"
	KeyStop    = "k"
	KeyQuit    = "q"
	KeyQuitAlt = "ctrl+c"
	KeyConfirm = "y"
	KeyBack    = "esc"
)

// handleKey processes keyboard input for the current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.mode {
	case modeConfirmStop:
		// Only an explicit yes stops the worker; every other key cancels.
		// The prompt closes as soon as the command is issued so a repeated
		// yes can't signal the session twice.
		if key == KeyConfirm {
			m.mode = modeReport
			m.stopping = true
			m.notice = "stopping worker session..."
			return m, m.stopCmd()
		}
		m.mode = modeReport
		m.notice = ""
		return m, nil

	case modeFollow:
		switch key {
		case KeyQuit, KeyQuitAlt, KeyBack:
			m.mode = modeReport
			m.follow = nil
			return m, m.collectCmd()
		}
		if m.follow != nil {
			m.follow.handleKey(msg)
		}
		return m, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return m, tea.Quit

	case KeyRefresh:
		m.refreshing = true
		return m, m.collectCmd()

	case KeyFollow:
		return m.startFollow()

	case KeyAttach:
		if m.report != nil && !m.report.Session.Exists {
			m.notice = "no session to attach to"
			return m, nil
		}
		return m, m.attachCmd()

	case KeyStop:
		if m.stopping {
			m.notice = "stop already in progress"
			return m, nil
		}
		if m.report != nil && !m.report.Session.Exists {
			m.notice = "no session to stop"
			return m, nil
		}
		m.mode = modeConfirmStop
		return m, nil
	}

	// Any other key just refreshes early.
	m.refreshing = true
	return m, m.collectCmd()
}
