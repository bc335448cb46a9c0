// Package exec runs the shell commands behind every probe: process listing,
// tmux queries, metric collection. A Runner decides where those commands
// execute, so the dashboard can supervise a worker on the local machine or on
// a remote host without the probes knowing the difference.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// Runner executes shell scripts on behalf of the probes.
type Runner interface {
	// Run executes a shell script and returns its trimmed stdout.
	// A non-zero exit is returned as an error carrying stderr text.
	Run(ctx context.Context, script string) (string, error)

	// Command builds an interactive command for the script that inherits
	// the caller's terminal. Used for tmux attach and log following.
	Command(script string) *osexec.Cmd

	// Target describes where commands run: empty for local, the resolved
	// endpoint for remote.
	Target() string
}

// LocalRunner executes scripts through the local shell.
type LocalRunner struct{}

// NewLocal creates a runner for the local machine.
func NewLocal() *LocalRunner {
	return &LocalRunner{}
}

func (r *LocalRunner) Run(ctx context.Context, script string) (string, error) {
	cmd := osexec.CommandContext(ctx, shell(), "-c", script)
	return capture(cmd, script)
}

func (r *LocalRunner) Command(script string) *osexec.Cmd {
	cmd := osexec.Command(shell(), "-c", script)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

func (r *LocalRunner) Target() string { return "" }

// RemoteRunner executes scripts on a remote host through the system ssh
// binary. Interactive hand-offs (tmux attach) need a real terminal, which is
// why this shells out instead of using an in-process SSH client.
type RemoteRunner struct {
	alias    string
	resolved string
}

// NewRemote creates a runner for the given ssh destination. The destination
// may be a plain user@host or an alias from ~/.ssh/config; aliases are
// resolved for display so status output names the real endpoint.
func NewRemote(destination string) *RemoteRunner {
	return &RemoteRunner{
		alias:    destination,
		resolved: ResolveAlias(destination),
	}
}

func (r *RemoteRunner) Run(ctx context.Context, script string) (string, error) {
	cmd := osexec.CommandContext(ctx, "ssh", "-o", "BatchMode=yes", r.alias, script)
	return capture(cmd, script)
}

func (r *RemoteRunner) Command(script string) *osexec.Cmd {
	// -t forces a TTY so tmux attach works through the hop
	cmd := osexec.Command("ssh", "-t", r.alias, script)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

func (r *RemoteRunner) Target() string { return r.resolved }

// ResolveAlias maps an ssh destination to a user@host endpoint using
// ~/.ssh/config. Destinations already containing '@' pass through, and
// unresolvable aliases are returned as-is.
func ResolveAlias(destination string) string {
	if strings.Contains(destination, "@") {
		return destination
	}

	hostname := ssh_config.Get(destination, "HostName")
	if hostname == "" {
		return destination
	}

	user := ssh_config.Get(destination, "User")
	if user == "" {
		return hostname
	}
	return user + "@" + hostname
}

// Quote wraps a string in single quotes, escaping any existing single quotes.
// Safe for embedding literal values in shell scripts.
func Quote(s string) string {
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

func shell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// capture runs the command and returns trimmed stdout. Failures include
// stderr text so callers can classify tmux "no server running" style output.
func capture(cmd *osexec.Cmd, script string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", firstWord(script), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

func firstWord(script string) string {
	fields := strings.Fields(script)
	if len(fields) == 0 {
		return "command"
	}
	return fields[0]
}
