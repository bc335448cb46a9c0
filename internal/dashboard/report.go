// Package dashboard renders the live supervision view: one self-contained
// report per cycle, collected fresh each time, with per-section degradation
// so a broken probe dims its section instead of killing the loop.
package dashboard

import (
	"context"
	"time"

	"scrapewatch/internal/artifacts"
	"scrapewatch/internal/config"
	"scrapewatch/internal/errors"
	"scrapewatch/internal/exec"
	"scrapewatch/internal/logger"
	"scrapewatch/internal/logscan"
	"scrapewatch/internal/metrics"
	"scrapewatch/internal/netcheck"
	"scrapewatch/internal/probe"
	"scrapewatch/internal/session"
)

// Report is everything one dashboard cycle shows, frozen at GeneratedAt.
// Each section carries its own error; a nil section error means the data
// beside it is trustworthy for this cycle.
type Report struct {
	GeneratedAt time.Time
	Target      string

	Process    probe.Status
	ProcessErr error

	Session    session.Status
	SessionErr error
	TmuxFound  bool

	Resources metrics.Snapshot

	Log    logscan.Stats
	LogErr error

	Artifacts    artifacts.Info
	ArtifactsErr error

	Net netcheck.Result
}

// Collector owns the probes and assembles reports. The log scanner persists
// across cycles so each report only reads newly appended log bytes.
type Collector struct {
	cfg       *config.Config
	runner    exec.Runner
	process   *probe.Probe
	session   *session.Probe
	sampler   *metrics.Sampler
	scanner   *logscan.Scanner
	inventory *artifacts.Inventory
	checker   *netcheck.Checker
	log       logger.Logger

	tmuxChecked bool
	tmuxFound   bool
}

// NewCollector wires the probes for the given target.
func NewCollector(runner exec.Runner, cfg *config.Config, log logger.Logger) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		cfg:     cfg,
		runner:  runner,
		process: probe.New(runner, log),
		session: session.New(runner, log),
		sampler: metrics.NewSampler(runner, cfg.Dir, log),
		scanner: logscan.NewScanner(cfg.LogPath(), logscan.Markers{
			Error:        cfg.Log.Markers.Error,
			Success:      cfg.Log.Markers.Success,
			Search:       cfg.Log.Markers.Search,
			NewItem:      cfg.Log.Markers.NewItem,
			LocationDone: cfg.Log.Markers.LocationDone,
		}, logscan.WithRecent(cfg.Log.Recent), logscan.WithWidth(cfg.Log.Width)),
		inventory: artifacts.New(artifacts.Classes{
			Excel: cfg.Artifacts.ExcelExts,
			CSV:   cfg.Artifacts.CSVExts,
		}, log),
		checker: netcheck.New(cfg.Net.URL, cfg.Net.Timeout),
		log:     log,
	}
}

// Session exposes the session probe for attach and stop actions.
func (c *Collector) Session() *session.Probe {
	return c.session
}

// remote reports whether probes run on another host. The log scanner and
// artifact inventory read the local filesystem, so those sections are
// unavailable when supervising remotely.
func (c *Collector) remote() bool {
	return c.cfg.Remote != ""
}

// Collect runs every probe once and assembles a report. It never returns an
// error: each failure lands in its section and the rest of the report stands.
func (c *Collector) Collect(ctx context.Context) *Report {
	r := &Report{
		GeneratedAt: time.Now(),
		Target:      c.runner.Target(),
	}

	r.Process, r.ProcessErr = c.process.Find(ctx, c.cfg.Worker.Pattern)

	if !c.tmuxChecked {
		c.tmuxFound = c.session.Installed(ctx)
		c.tmuxChecked = true
	}
	r.TmuxFound = c.tmuxFound
	if c.tmuxFound {
		r.Session, r.SessionErr = c.session.Status(ctx, c.cfg.Session)
	} else {
		r.Session = session.Status{Name: c.cfg.Session}
		r.SessionErr = errors.New(errors.ErrSession,
			"tmux is not installed", "Install tmux to manage the worker session")
	}

	r.Resources = c.sampler.Sample(ctx)

	if c.remote() {
		remoteErr := errors.New(errors.ErrLog,
			"Not available when supervising a remote host",
			"Run scrapewatch on the worker's host for log and file details")
		r.LogErr = remoteErr
		r.ArtifactsErr = remoteErr
	} else {
		r.Log, r.LogErr = c.scanner.Scan()
		r.Artifacts, r.ArtifactsErr = c.inventory.Scan(c.cfg.Dir)
	}

	r.Net = c.checker.Check(ctx)

	c.log.Debug("collected report for %s in %s", r.Target, time.Since(r.GeneratedAt))
	return r
}

// Healthy reports whether the worker looks alive this cycle: the process is
// up, or at least its session still exists.
func (r *Report) Healthy() bool {
	return r.Process.Running || r.Session.Exists
}
