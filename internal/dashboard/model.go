package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scrapewatch/internal/config"
	"scrapewatch/internal/logger"
)

// mode is the dashboard's current interaction state.
type mode int

const (
	// modeReport shows the full report and waits for a command key.
	modeReport mode = iota
	// modeConfirmStop overlays a y/n prompt before stopping the worker.
	modeConfirmStop
	// modeFollow streams the worker log live.
	modeFollow
)

// collectTimeout bounds one probe cycle, remote round trips included.
const collectTimeout = 20 * time.Second

// stopGrace is how long the worker gets to react to the interrupt before
// the session is torn down.
const stopGrace = 2 * time.Second

// Model is the Bubble Tea model for the supervision dashboard.
type Model struct {
	collector *Collector
	cfg       *config.Config
	log       logger.Logger

	report     *Report
	mode       mode
	follow     *followState
	width      int
	height     int
	interval   time.Duration
	refreshing bool
	stopping   bool
	notice     string
	quitting   bool
}

// tickMsg signals the periodic refresh; input waiting never blocks past it.
type tickMsg time.Time

// reportMsg carries a freshly collected report.
type reportMsg struct {
	report *Report
}

// followTickMsg drives the live log poll.
type followTickMsg time.Time

// attachDoneMsg signals the attach hand-off returned the terminal.
type attachDoneMsg struct {
	err error
}

// stopDoneMsg signals the stop sequence finished.
type stopDoneMsg struct {
	err error
}

// followPollInterval is the live log poll rate.
const followPollInterval = 250 * time.Millisecond

// NewModel creates the dashboard model. The collector is probed once at
// startup and then once per interval or keypress.
func NewModel(collector *Collector, cfg *config.Config, log logger.Logger) Model {
	if log == nil {
		log = logger.Noop()
	}
	return Model{
		collector: collector,
		cfg:       cfg,
		log:       log,
		interval:  cfg.Refresh,
	}
}

// Init starts the refresh timer and triggers the first collection.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.collectCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.follow != nil {
			m.follow.resize(msg.Width, m.followHeight())
		}

	case tickMsg:
		// The wait for input is bounded; a cycle happens even if the
		// operator never touches the keyboard.
		return m, tea.Batch(m.tickCmd(), m.collectCmd())

	case reportMsg:
		m.report = msg.report
		m.refreshing = false

	case followTickMsg:
		if m.mode != modeFollow || m.follow == nil {
			return m, nil
		}
		m.follow.poll()
		return m, m.followTickCmd()

	case attachDoneMsg:
		m.mode = modeReport
		m.notice = ""
		if msg.err != nil {
			m.notice = "attach failed: " + msg.err.Error()
		}
		return m, m.collectCmd()

	case stopDoneMsg:
		m.mode = modeReport
		m.stopping = false
		if msg.err != nil {
			m.notice = "stop failed: " + msg.err.Error()
		} else {
			m.notice = "worker session stopped"
		}
		return m, m.collectCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeFollow:
		return m.renderFollow()
	case modeConfirmStop:
		return m.renderReport() + "\n" + m.renderConfirm()
	default:
		return m.renderReport()
	}
}

// tickCmd schedules the next bounded refresh.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// followTickCmd schedules the next live log poll.
func (m Model) followTickCmd() tea.Cmd {
	return tea.Tick(followPollInterval, func(t time.Time) tea.Msg {
		return followTickMsg(t)
	})
}

// collectCmd runs one probe cycle off the update loop.
func (m Model) collectCmd() tea.Cmd {
	collector := m.collector
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
		defer cancel()
		return reportMsg{report: collector.Collect(ctx)}
	}
}

// attachCmd hands the terminal to tmux until the operator detaches.
func (m Model) attachCmd() tea.Cmd {
	cmd := m.collector.Session().AttachCommand(m.cfg.Session)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return attachDoneMsg{err: err}
	})
}

// stopCmd interrupts the worker, waits a grace period, then kills the
// session. Runs only after the operator confirmed.
func (m Model) stopCmd() tea.Cmd {
	sess := m.collector.Session()
	name := m.cfg.Session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
		defer cancel()
		if err := sess.Interrupt(ctx, name); err != nil {
			return stopDoneMsg{err: err}
		}
		time.Sleep(stopGrace)
		return stopDoneMsg{err: sess.Kill(ctx, name)}
	}
}

// startFollow switches to live log mode.
func (m Model) startFollow() (Model, tea.Cmd) {
	m.mode = modeFollow
	m.follow = newFollowState(m.cfg.LogPath(), m.width, m.followHeight())
	return m, m.followTickCmd()
}

// followHeight is the viewport height left after header and footer.
func (m Model) followHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// SecondsSinceUpdate returns the age of the current report in whole seconds.
func (m Model) SecondsSinceUpdate() int {
	if m.report == nil || m.report.GeneratedAt.IsZero() {
		return 0
	}
	return int(time.Since(m.report.GeneratedAt).Seconds())
}
