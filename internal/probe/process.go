// Package probe answers one question each cycle: is the worker process
// alive, and since when. It scans the process table through the runner and
// never signals anything it finds.
package probe

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"scrapewatch/internal/errors"
	"scrapewatch/internal/exec"
	"scrapewatch/internal/logger"
)

// Status describes the worker process as of one probe.
type Status struct {
	Running   bool
	PID       int
	StartedAt time.Time

	// Ambiguous is set when more than one process matched the pattern.
	// The first match populates PID/StartedAt; Matches carries the count
	// so the dashboard can report the ambiguity instead of hiding it.
	Ambiguous bool
	Matches   int
}

// psLayout matches the lstart column after whitespace collapsing,
// e.g. "Mon Jan 2 15:04:05 2006".
const psLayout = "Mon Jan 2 15:04:05 2006"

// Probe finds worker processes by command-line substring.
type Probe struct {
	runner exec.Runner
	log    logger.Logger
}

// New creates a process probe using the given runner.
func New(runner exec.Runner, log logger.Logger) *Probe {
	if log == nil {
		log = logger.Noop()
	}
	return &Probe{runner: runner, log: log}
}

// Find scans the process table for commands containing pattern. Zero matches
// is a normal not-running result, not an error; the error return is reserved
// for ps itself failing.
func (p *Probe) Find(ctx context.Context, pattern string) (Status, error) {
	out, err := p.runner.Run(ctx, "ps -eo pid,lstart,args")
	if err != nil {
		return Status{}, errors.WrapWithCode(err, errors.ErrProcess,
			"Couldn't list processes",
			"Check that ps is available on the target host")
	}
	return p.parse(out, pattern), nil
}

func (p *Probe) parse(out, pattern string) Status {
	var status Status
	self := strconv.Itoa(os.Getpid())

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		// pid + 5 lstart fields + at least one command field
		if len(fields) < 7 {
			continue
		}

		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			// header line
			continue
		}

		args := strings.Join(fields[6:], " ")
		if !strings.Contains(args, pattern) {
			continue
		}
		if fields[0] == self {
			continue
		}

		status.Matches++
		if status.Matches > 1 {
			status.Ambiguous = true
			continue
		}

		status.Running = true
		status.PID = pid

		started, err := time.ParseInLocation(psLayout, strings.Join(fields[1:6], " "), time.Local)
		if err != nil {
			p.log.Debug("unparseable lstart for pid %d: %v", pid, err)
		} else {
			status.StartedAt = started
		}
	}

	return status
}

// Uptime returns how long the worker has been running, or zero when the
// start time is unknown.
func (s Status) Uptime(now time.Time) time.Duration {
	if !s.Running || s.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(s.StartedAt)
}
