package metrics

import (
	"context"
	"errors"
	osexec "os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapewatch/internal/logger"
)

type fakeRunner struct {
	out string
	err error
}

func (f *fakeRunner) Run(ctx context.Context, script string) (string, error) {
	return f.out, f.err
}

func (f *fakeRunner) Command(script string) *osexec.Cmd { return osexec.Command("true") }

func (f *fakeRunner) Target() string { return "" }

func batched(sections ...string) string {
	return strings.Join(sections, "\n---\n")
}

func TestSampleAllSections(t *testing.T) {
	runner := &fakeRunner{out: batched(sampleProcStat, sampleMeminfo, sampleDf)}
	s := NewSampler(runner, "/work", logger.Noop())

	snap := s.Sample(context.Background())

	assert.Empty(t, snap.Unavailable)
	assert.Greater(t, snap.CPUPercent, 0.0)
	assert.Greater(t, snap.MemTotal, int64(0))
	assert.Greater(t, snap.DiskTotal, int64(0))
	assert.True(t, snap.Has(MetricCPU))
	assert.True(t, snap.Has(MetricDisk))
}

func TestSampleDegradesPerSection(t *testing.T) {
	// Disk section is garbage, the rest is fine
	runner := &fakeRunner{out: batched(sampleProcStat, sampleMeminfo, "df: /work: No such file or directory")}
	s := NewSampler(runner, "/work", logger.Noop())

	snap := s.Sample(context.Background())

	assert.True(t, snap.Has(MetricCPU))
	assert.True(t, snap.Has(MetricMemory))
	assert.False(t, snap.Has(MetricDisk))
	assert.Greater(t, snap.MemTotal, int64(0))
}

func TestSampleCPUDeltaBetweenCycles(t *testing.T) {
	runner := &fakeRunner{out: batched("cpu  1000 0 0 9000 0 0 0 0 0 0", sampleMeminfo, sampleDf)}
	s := NewSampler(runner, "/work", logger.Noop())
	s.Sample(context.Background())

	// 500 of the 1000 jiffies elapsed since the first sample were busy
	runner.out = batched("cpu  1500 0 0 9500 0 0 0 0 0 0", sampleMeminfo, sampleDf)
	snap := s.Sample(context.Background())

	assert.InDelta(t, 50.0, snap.CPUPercent, 0.001)
}

func TestSampleCommandFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("ssh: connection timed out")}
	s := NewSampler(runner, "/work", logger.Noop())

	snap := s.Sample(context.Background())

	// Every metric degrades; the sample itself never errors
	for _, m := range []string{MetricCPU, MetricMemory, MetricSwap, MetricDisk} {
		assert.False(t, snap.Has(m), "metric %s should be unavailable", m)
	}
}

func TestSampleEmptyOutput(t *testing.T) {
	runner := &fakeRunner{out: ""}
	s := NewSampler(runner, "/work", logger.Noop())

	snap := s.Sample(context.Background())
	assert.False(t, snap.Has(MetricCPU))
	assert.False(t, snap.Has(MetricMemory))
	assert.False(t, snap.Has(MetricDisk))
}

func TestSnapshotPercentages(t *testing.T) {
	snap := Snapshot{
		MemUsed: 4, MemTotal: 8,
		DiskUsed: 30, DiskTotal: 100,
	}
	assert.InDelta(t, 50.0, snap.MemPercent(), 0.001)
	assert.InDelta(t, 30.0, snap.DiskPercent(), 0.001)

	var zero Snapshot
	assert.Zero(t, zero.MemPercent())
	assert.Zero(t, zero.DiskPercent())
}

func TestSampleCommandQuotesDir(t *testing.T) {
	s := NewSampler(&fakeRunner{}, "/my dir/with spaces", logger.Noop())
	cmd := s.sampleCommand()
	require.Contains(t, cmd, "'/my dir/with spaces'")
	assert.Contains(t, cmd, "/proc/stat")
	assert.Contains(t, cmd, "/proc/meminfo")
}
