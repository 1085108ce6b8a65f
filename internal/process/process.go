// Package process runs external build tools. Child processes inherit the
// orchestrator's standard streams so their diagnostics reach the user
// unparsed; the orchestrator only adds its own short message when a step
// fails.
package process

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

// Runner is an interface for running external commands.
// This allows for mocking in tests.
type Runner interface {
	Run(dir, name string, args ...string) error
}

// OSRunner runs commands through os/exec with inherited standard streams.
type OSRunner struct {
	// Env is the environment for child processes; nil inherits the current
	// process environment.
	Env []string

	// Stdout and Stderr override the child's streams; nil inherits the
	// orchestrator's own.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes a command in the given directory, blocking until it exits.
func (r *OSRunner) Run(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Env = r.Env
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// ExitCode extracts the exit code from an error returned by Run. It returns 0
// for nil and falls back to 1 when the command failed without a usable code
// (e.g. the binary was not found or the process was signalled).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
