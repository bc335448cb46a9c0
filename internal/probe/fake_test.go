package probe

import (
	"context"
	osexec "os/exec"
)

// fakeRunner returns canned output for probe tests.
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
	return osexec.Command("true")
}

func (f *fakeRunner) Target() string { return "" }
