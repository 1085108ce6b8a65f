// Package cargo wraps the cargo build and clean commands for the crate side
// of the plugin.
package cargo

import (
	"os"

	"github.com/hdktools/cargo-hdk/internal/process"
	"github.com/hdktools/cargo-hdk/internal/types"
)

// Cargo runs cargo commands from the crate root.
type Cargo struct {
	dir    string
	bin    string
	runner process.Runner
}

// New returns a Cargo driver rooted at dir. When run as a cargo subcommand
// the CARGO environment variable names the invoking binary; otherwise the
// cargo on PATH is used.
func New(dir string, runner process.Runner) *Cargo {
	bin := os.Getenv("CARGO")
	if bin == "" {
		bin = "cargo"
	}
	return &Cargo{dir: dir, bin: bin, runner: runner}
}

// Bin returns the cargo binary in use.
func (c *Cargo) Bin() string { return c.bin }

// BuildArgs returns the argument vector for the build step: the mode flag
// followed by the user's pass-through arguments, verbatim.
func (c *Cargo) BuildArgs(mode types.BuildMode, passThrough ...string) []string {
	args := []string{"build"}
	args = append(args, mode.CargoFlags()...)
	return append(args, passThrough...)
}

// Build runs "cargo build" with the mode flag and pass-through arguments.
func (c *Cargo) Build(mode types.BuildMode, passThrough ...string) error {
	return c.runner.Run(c.dir, c.bin, c.BuildArgs(mode, passThrough...)...)
}

// Clean runs "cargo clean" with pass-through arguments.
func (c *Cargo) Clean(passThrough ...string) error {
	args := append([]string{"clean"}, passThrough...)
	return c.runner.Run(c.dir, c.bin, args...)
}
