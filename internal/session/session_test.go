package session

import (
	"context"
	"errors"
	osexec "os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swerrors "scrapewatch/internal/errors"
	"scrapewatch/internal/logger"
)

type fakeRunner struct {
	out     string
	err     error
	scripts []string
}

func (f *fakeRunner) Run(ctx context.Context, script string) (string, error) {
	f.scripts = append(f.scripts, script)
	return f.out, f.err
}

func (f *fakeRunner) Command(script string) *osexec.Cmd {
	f.scripts = append(f.scripts, script)
	return osexec.Command("true")
}

func (f *fakeRunner) Target() string { return "" }

func TestStatusSessionDetached(t *testing.T) {
	runner := &fakeRunner{out: "scraper:0\nother:1"}
	p := New(runner, logger.Noop())

	status, err := p.Status(context.Background(), "scraper")
	require.NoError(t, err)

	assert.True(t, status.Exists)
	assert.False(t, status.Attached)
	assert.Equal(t, "scraper", status.Name)
}

func TestStatusSessionAttached(t *testing.T) {
	runner := &fakeRunner{out: "scraper:1"}
	p := New(runner, logger.Noop())

	status, err := p.Status(context.Background(), "scraper")
	require.NoError(t, err)

	assert.True(t, status.Exists)
	assert.True(t, status.Attached)
}

func TestStatusSessionMissing(t *testing.T) {
	runner := &fakeRunner{out: "other:0"}
	p := New(runner, logger.Noop())

	status, err := p.Status(context.Background(), "scraper")
	require.NoError(t, err)

	assert.False(t, status.Exists)
}

func TestStatusNoServerIsAbsence(t *testing.T) {
	// tmux exits non-zero with this message when no server has ever started
	runner := &fakeRunner{err: errors.New("tmux: exit status 1: no server running on /tmp/tmux-1000/default")}
	p := New(runner, logger.Noop())

	status, err := p.Status(context.Background(), "scraper")
	require.NoError(t, err)
	assert.False(t, status.Exists)
}

func TestStatusRealFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("ssh: connection refused")}
	p := New(runner, logger.Noop())

	_, err := p.Status(context.Background(), "scraper")
	require.Error(t, err)
	assert.True(t, swerrors.IsCode(err, swerrors.ErrSession))
}

func TestAttachCommandTargetsSession(t *testing.T) {
	runner := &fakeRunner{}
	p := New(runner, logger.Noop())

	cmd := p.AttachCommand("scraper")
	require.NotNil(t, cmd)
	require.Len(t, runner.scripts, 1)
	assert.Equal(t, "tmux attach -t 'scraper'", runner.scripts[0])
}

func TestKill(t *testing.T) {
	runner := &fakeRunner{}
	p := New(runner, logger.Noop())

	require.NoError(t, p.Kill(context.Background(), "scraper"))
	require.Len(t, runner.scripts, 1)
	assert.Equal(t, "tmux kill-session -t 'scraper'", runner.scripts[0])
}

func TestKillFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("tmux: can't find session: scraper")}
	p := New(runner, logger.Noop())

	err := p.Kill(context.Background(), "scraper")
	require.Error(t, err)
	assert.True(t, swerrors.IsCode(err, swerrors.ErrSession))
}

func TestInterrupt(t *testing.T) {
	runner := &fakeRunner{}
	p := New(runner, logger.Noop())

	require.NoError(t, p.Interrupt(context.Background(), "scraper"))
	require.Len(t, runner.scripts, 1)
	assert.True(t, strings.HasSuffix(runner.scripts[0], "C-c"))
}

func TestInstalled(t *testing.T) {
	p := New(&fakeRunner{out: "/usr/bin/tmux"}, logger.Noop())
	assert.True(t, p.Installed(context.Background()))

	p = New(&fakeRunner{err: errors.New("command not found")}, logger.Noop())
	assert.False(t, p.Installed(context.Background()))
}
