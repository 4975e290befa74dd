package changelog

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes an external command in a directory and returns its stdout.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// CmdRunner runs commands with os/exec.
type CmdRunner struct{}

// Run executes name with args inside dir. Stderr is folded into the error.
func (CmdRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return stdout.Bytes(), &RunError{Err: err, Stderr: string(msg)}
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

// RunError carries the stderr output of a failed command.
type RunError struct {
	Err    error
	Stderr string
}

func (e *RunError) Error() string {
	return e.Err.Error() + ": " + e.Stderr
}

func (e *RunError) Unwrap() error {
	return e.Err
}

var _ Runner = CmdRunner{}
