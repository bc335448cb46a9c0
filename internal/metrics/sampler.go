// Package metrics samples host CPU, memory, swap, and disk utilization at
// call time. One batched shell command collects everything, each section is
// parsed independently, and a failed section degrades that metric to
// unavailable instead of failing the sample. Resource visibility never
// blocks the dashboard.
package metrics

import (
	"context"
	"strings"

	"scrapewatch/internal/exec"
	"scrapewatch/internal/logger"
)

// sectionSeparator splits the batched command output.
const sectionSeparator = "---"

// Metric names used in Snapshot.Unavailable.
const (
	MetricCPU    = "cpu"
	MetricMemory = "memory"
	MetricSwap   = "swap"
	MetricDisk   = "disk"
)

// Snapshot is one instantaneous reading; no history is retained.
type Snapshot struct {
	CPUPercent float64
	MemUsed    int64
	MemTotal   int64
	SwapUsed   int64
	SwapTotal  int64
	DiskUsed   int64
	DiskTotal  int64

	// Unavailable names the metrics whose collection failed this cycle.
	Unavailable []string
}

// Has reports whether the named metric was collected.
func (s Snapshot) Has(metric string) bool {
	for _, m := range s.Unavailable {
		if m == metric {
			return false
		}
	}
	return true
}

// MemPercent returns memory utilization, or 0 when total is unknown.
func (s Snapshot) MemPercent() float64 {
	if s.MemTotal == 0 {
		return 0
	}
	return float64(s.MemUsed) / float64(s.MemTotal) * 100
}

// DiskPercent returns disk utilization, or 0 when total is unknown.
func (s Snapshot) DiskPercent() float64 {
	if s.DiskTotal == 0 {
		return 0
	}
	return float64(s.DiskUsed) / float64(s.DiskTotal) * 100
}

// Sampler collects resource snapshots through the runner.
type Sampler struct {
	runner exec.Runner
	dir    string
	log    logger.Logger

	// prevCPU holds the last cycle's counters for the utilization delta.
	prevCPU CPUTicks
}

// NewSampler creates a sampler for the filesystem holding dir.
func NewSampler(runner exec.Runner, dir string, log logger.Logger) *Sampler {
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{runner: runner, dir: dir, log: log}
}

// sampleCommand batches every metric read into one shell invocation, so a
// remote sample costs a single round trip.
func (s *Sampler) sampleCommand() string {
	return `cat /proc/stat 2>/dev/null; echo "` + sectionSeparator + `"; ` +
		`cat /proc/meminfo 2>/dev/null; echo "` + sectionSeparator + `"; ` +
		`df -P -k ` + exec.Quote(s.dir) + ` 2>/dev/null`
}

// Sample reads all metrics once. It never returns an error: anything that
// fails is listed in Snapshot.Unavailable and the rest is still reported.
func (s *Sampler) Sample(ctx context.Context) Snapshot {
	out, err := s.runner.Run(ctx, s.sampleCommand())
	if err != nil {
		s.log.Debug("metric collection failed: %v", err)
		return Snapshot{Unavailable: []string{MetricCPU, MetricMemory, MetricSwap, MetricDisk}}
	}

	sections := strings.Split(out, sectionSeparator)
	for len(sections) < 3 {
		sections = append(sections, "")
	}

	var snap Snapshot

	ticks, err := ParseCPU(sections[0])
	if err != nil {
		s.log.Debug("cpu parse failed: %v", err)
		snap.Unavailable = append(snap.Unavailable, MetricCPU)
	} else {
		// First cycle has no previous counters and reports the
		// since-boot average; later cycles report the interval delta.
		snap.CPUPercent = ticks.Percent(s.prevCPU)
		s.prevCPU = ticks
	}

	mem, err := ParseMemory(sections[1])
	if err != nil {
		s.log.Debug("memory parse failed: %v", err)
		snap.Unavailable = append(snap.Unavailable, MetricMemory, MetricSwap)
	} else {
		snap.MemUsed = mem.MemUsed
		snap.MemTotal = mem.MemTotal
		snap.SwapUsed = mem.SwapUsed
		snap.SwapTotal = mem.SwapTotal
	}

	used, total, err := ParseDisk(sections[2])
	if err != nil {
		s.log.Debug("disk parse failed: %v", err)
		snap.Unavailable = append(snap.Unavailable, MetricDisk)
	} else {
		snap.DiskUsed = used
		snap.DiskTotal = total
	}

	return snap
}
