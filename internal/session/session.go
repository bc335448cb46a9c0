// Package session observes and controls the tmux session that keeps the
// worker alive after the operator's terminal goes away. The dashboard never
// creates sessions; it only observes them, attaches, and kills them after
// explicit confirmation.
package session

import (
	"context"
	osexec "os/exec"
	"strings"

	"scrapewatch/internal/errors"
	"scrapewatch/internal/exec"
	"scrapewatch/internal/logger"
)

// Status describes the worker's tmux session as of one probe.
type Status struct {
	Exists bool
	Name   string

	// Attached reports whether some client is already attached, so the
	// dashboard can warn before handing the terminal over.
	Attached bool
}

// Probe wraps the tmux commands used to observe and control the session.
type Probe struct {
	runner exec.Runner
	log    logger.Logger
}

// New creates a session probe using the given runner.
func New(runner exec.Runner, log logger.Logger) *Probe {
	if log == nil {
		log = logger.Noop()
	}
	return &Probe{runner: runner, log: log}
}

// Status reports whether the named session exists and whether a client is
// attached. A missing tmux server means no sessions, not a failure.
func (p *Probe) Status(ctx context.Context, name string) (Status, error) {
	out, err := p.runner.Run(ctx, "tmux list-sessions -F '#{session_name}:#{session_attached}'")
	if err != nil {
		if isAbsence(err) {
			return Status{Name: name}, nil
		}
		return Status{Name: name}, errors.WrapWithCode(err, errors.ErrSession,
			"Couldn't query tmux sessions",
			"Check that tmux is installed on the target host")
	}

	status := Status{Name: name}
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 || parts[0] != name {
			continue
		}
		status.Exists = true
		status.Attached = parts[1] != "0"
		break
	}
	return status, nil
}

// AttachCommand builds the interactive tmux attach command. The caller hands
// the terminal over to it and regains control when the operator detaches.
func (p *Probe) AttachCommand(name string) *osexec.Cmd {
	return p.runner.Command("tmux attach -t " + exec.Quote(name))
}

// Kill terminates the session and everything running inside it. Callers must
// have confirmed with the operator first; there is no prompt at this level.
func (p *Probe) Kill(ctx context.Context, name string) error {
	p.log.Info("killing session %s", name)
	if _, err := p.runner.Run(ctx, "tmux kill-session -t "+exec.Quote(name)); err != nil {
		return errors.WrapWithCode(err, errors.ErrSession,
			"Couldn't stop session '"+name+"'",
			"The session may have already exited; check with: tmux ls")
	}
	return nil
}

// Interrupt sends Ctrl+C to the session's active pane, asking the worker to
// wind down without tearing the session away.
func (p *Probe) Interrupt(ctx context.Context, name string) error {
	if _, err := p.runner.Run(ctx, "tmux send-keys -t "+exec.Quote(name)+" C-c"); err != nil {
		return errors.WrapWithCode(err, errors.ErrSession,
			"Couldn't signal session '"+name+"'",
			"Check the session exists: tmux ls")
	}
	return nil
}

// Installed reports whether tmux is available on the target host.
func (p *Probe) Installed(ctx context.Context) bool {
	_, err := p.runner.Run(ctx, "command -v tmux")
	return err == nil
}

// isAbsence classifies tmux failures that just mean "no sessions anywhere".
func isAbsence(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no server running") ||
		strings.Contains(msg, "no sessions") ||
		strings.Contains(msg, "No such file or directory") ||
		strings.Contains(msg, "error connecting to")
}
