package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	osexec "os/exec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapewatch/internal/config"
)

// scriptedRunner answers Run calls by prefix match against canned responses.
type scriptedRunner struct {
	responses map[string]string
	failures  map[string]string
	scripts   []string
}

func (r *scriptedRunner) Run(_ context.Context, script string) (string, error) {
	r.scripts = append(r.scripts, script)
	for prefix, msg := range r.failures {
		if strings.HasPrefix(script, prefix) {
			return "", fmt.Errorf("%s", msg)
		}
	}
	for prefix, out := range r.responses {
		if strings.HasPrefix(script, prefix) {
			return out, nil
		}
	}
	return "", nil
}

func (r *scriptedRunner) Command(script string) *osexec.Cmd {
	return osexec.Command("/bin/sh", "-c", script)
}

func (r *scriptedRunner) Target() string { return "local" }

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Dir = "/srv/scraper"
	return cfg
}

func TestWorkerScriptCheckPass(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"ls -1": "google_maps_scraper_turbo.py\nscraper_turbo_firefox.log",
	}}
	check := &WorkerScriptCheck{Runner: runner, Cfg: testConfig()}

	result := check.Run(context.Background())

	assert.Equal(t, StatusPass, result.Status)
	assert.Contains(t, result.Message, "google_maps_scraper_turbo.py")
}

func TestWorkerScriptCheckFailWrongDirectory(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"ls -1": "notes.txt\nphotos",
	}}
	check := &WorkerScriptCheck{Runner: runner, Cfg: testConfig()}

	result := check.Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.True(t, check.Fatal())
	assert.Contains(t, result.Suggestion, "--dir")
}

func TestWorkerScriptCheckUnreadableDirectory(t *testing.T) {
	runner := &scriptedRunner{failures: map[string]string{
		"ls -1": "ls: cannot access '/srv/scraper': No such file or directory",
	}}
	check := &WorkerScriptCheck{Runner: runner, Cfg: testConfig()}

	result := check.Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "/srv/scraper")
}

func TestWorkerOutputCheckLogPresent(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"ls -1": "scraper_turbo_firefox.log",
	}}
	check := &WorkerOutputCheck{Runner: runner, Cfg: testConfig()}

	result := check.Run(context.Background())

	assert.Equal(t, StatusPass, result.Status)
}

func TestWorkerOutputCheckArtifactsOnly(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"ls -1": "results_taipei.XLSX",
	}}
	check := &WorkerOutputCheck{Runner: runner, Cfg: testConfig()}

	result := check.Run(context.Background())

	assert.Equal(t, StatusPass, result.Status, "extension match should be case-insensitive")
}

func TestWorkerOutputCheckNothingProduced(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"ls -1": "google_maps_scraper_turbo.py",
	}}
	check := &WorkerOutputCheck{Runner: runner, Cfg: testConfig()}

	result := check.Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.True(t, check.Fatal())
}

func TestTmuxCheckMissingIsWarnOnly(t *testing.T) {
	runner := &scriptedRunner{failures: map[string]string{
		"command -v tmux": "exit status 1",
	}}
	check := &TmuxCheck{Runner: runner}

	result := check.Run(context.Background())

	assert.Equal(t, StatusWarn, result.Status)
	assert.False(t, check.Fatal())
}

func TestRemoteCheckPassThrough(t *testing.T) {
	check := &RemoteCheck{Destination: "user@203.0.113.9"}

	result := check.Run(context.Background())

	assert.Equal(t, StatusPass, result.Status)
	assert.Contains(t, result.Message, "user@203.0.113.9")
}

func TestLogActivityCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scraper_turbo_firefox.log")
	check := &LogActivityCheck{Path: path, StaleAfter: time.Hour}

	result := check.Run(context.Background())
	assert.Equal(t, StatusWarn, result.Status, "missing log warns")

	require.NoError(t, os.WriteFile(path, []byte("line\n"), 0o644))
	result = check.Run(context.Background())
	assert.Equal(t, StatusPass, result.Status)

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))
	result = check.Run(context.Background())
	assert.Equal(t, StatusWarn, result.Status, "stale log warns")
}

func TestRunAllAndHasFailures(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]string{
		"ls -1":           "google_maps_scraper_turbo.py\nscraper_turbo_firefox.log",
		"command -v tmux": "/usr/bin/tmux",
	}}
	results := RunAll(context.Background(), StartupChecks(runner, testConfig()))

	require.Len(t, results, 3)
	assert.False(t, HasFailures(results))

	counts := CountByStatus(results)
	assert.Equal(t, 3, counts[StatusPass])
}

func TestStartupChecksIncludeRemote(t *testing.T) {
	cfg := testConfig()
	cfg.Remote = "scraperbox"
	runner := &scriptedRunner{}

	checks := StartupChecks(runner, cfg)

	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name()
	}
	assert.Contains(t, names, "remote")
}

func TestCheckStatusString(t *testing.T) {
	assert.Equal(t, "pass", StatusPass.String())
	assert.Equal(t, "warn", StatusWarn.String())
	assert.Equal(t, "fail", StatusFail.String())
}
