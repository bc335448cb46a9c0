package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"scrapewatch/internal/logscan"
)

// followBuffer caps how many log lines the follow view retains.
const followBuffer = 2000

// followState holds the live log view: a tail reading appended lines and a
// viewport scrolling over the retained buffer.
type followState struct {
	tail     *logscan.Tail
	lines    []string
	viewport viewport.Model
	ready    bool
	pinned   bool
}

// newFollowState starts following the log from its current end.
func newFollowState(path string, width, height int) *followState {
	f := &followState{
		tail:   logscan.NewTail(path),
		pinned: true,
	}
	if width > 0 && height > 0 {
		f.viewport = viewport.New(width, height)
		f.ready = true
	}
	return f
}

// resize adjusts the viewport to new terminal dimensions.
func (f *followState) resize(width, height int) {
	if !f.ready {
		f.viewport = viewport.New(width, height)
		f.ready = true
	} else {
		f.viewport.Width = width
		f.viewport.Height = height
	}
	f.refresh()
}

// poll drains newly appended lines into the buffer. Read failures are
// transient here; the next poll retries.
func (f *followState) poll() {
	lines, err := f.tail.Next()
	if err != nil || len(lines) == 0 {
		return
	}
	f.lines = append(f.lines, lines...)
	if len(f.lines) > followBuffer {
		f.lines = f.lines[len(f.lines)-followBuffer:]
	}
	f.refresh()
}

// refresh pushes the buffer into the viewport, keeping the view pinned to
// the bottom unless the operator scrolled away.
func (f *followState) refresh() {
	if !f.ready {
		return
	}
	f.viewport.SetContent(strings.Join(f.lines, "\n"))
	if f.pinned {
		f.viewport.GotoBottom()
	}
}

// handleKey forwards scrolling keys to the viewport and tracks whether the
// view is still pinned to the newest lines.
func (f *followState) handleKey(msg tea.KeyMsg) {
	if !f.ready {
		return
	}
	f.viewport, _ = f.viewport.Update(msg)
	f.pinned = f.viewport.AtBottom()
}
