package yabsnap

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Runner executes one external command to completion and returns its stdout.
// It is swappable so tests never spawn processes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// execRunner is the real thing: blocking, no timeout. A hung tool hangs the
// session, which is the cost of strictly serializing all tool access.
type execRunner struct{}

// ExecRunner returns the Runner used outside of tests.
func ExecRunner() Runner { return execRunner{} }

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), &ToolError{Args: cmd.Args, Stderr: stderr.String()}
		}
		// Spawn failure (binary missing, permission); same shape for the
		// operator.
		return stdout.String(), &ToolError{Args: cmd.Args, Stderr: err.Error()}
	}
	return stdout.String(), nil
}
