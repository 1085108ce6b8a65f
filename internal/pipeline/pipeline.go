// Package pipeline models the build as an explicit ordered sequence of named
// steps. Each step returns success or failure; the first failure aborts the
// remaining steps. There are no retries and no rollback: artifacts of a
// failed step stay in place for inspection and for the next run's cache.
package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/hdktools/cargo-hdk/internal/cargo"
	"github.com/hdktools/cargo-hdk/internal/cmake"
	"github.com/hdktools/cargo-hdk/internal/output"
	"github.com/hdktools/cargo-hdk/internal/process"
	"github.com/hdktools/cargo-hdk/internal/types"
)

// Step names, in execution order.
const (
	StepClean      = "clean"
	StepPrepare    = "prepare"
	StepConfigure  = "configure"
	StepBuildHDK   = "build-hdk"
	StepBuildCrate = "build-crate"
)

// StepError identifies which step failed. The wrapped error is the
// subprocess failure; its diagnostics were already inherited by the user's
// terminal.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ExitCode returns the exit code the whole tool should propagate.
func (e *StepError) ExitCode() int { return process.ExitCode(e.Err) }

// Step is one named unit of the pipeline.
type Step struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Command     string `json:"command,omitempty" yaml:"command,omitempty"`
	Skipped     bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty"`

	run func() error
}

// Options describe one invocation of the orchestrator. All paths are
// absolute by the time a plan is built.
type Options struct {
	Mode      types.BuildMode
	CrateRoot string
	PluginDir string
	BuildDir  string

	// CMakeArgs are forwarded verbatim to the configure step.
	CMakeArgs []string
	// ForceConfigure requires a configure step regardless of the cache
	// marker; set when --cmake was supplied this invocation.
	ForceConfigure bool

	// HdkOnly skips the crate build (and, on clean, the crate clean).
	HdkOnly bool
	// CargoArgs are forwarded verbatim to 'cargo build'.
	CargoArgs []string

	Runner process.Runner
}

// Plan is an ordered list of steps.
type Plan struct {
	Steps []Step `json:"steps" yaml:"steps"`
}

// NewBuild assembles the build pipeline: prepare the output directory,
// configure when needed, build the native plugin, then build the crate.
func NewBuild(opts Options) *Plan {
	cm := cmake.New(opts.PluginDir, opts.BuildDir, opts.Runner)
	cm.BuildType(opts.Mode)

	var steps []Step

	steps = append(steps, Step{
		Name:        StepPrepare,
		Description: fmt.Sprintf("create build directory %s", opts.BuildDir),
		run: func() error {
			return os.MkdirAll(opts.BuildDir, 0o755)
		},
	})

	// The generator cache marker is CMake's own cache file, probed fresh
	// from disk; a prior generator choice is reused implicitly through it.
	configure := Step{
		Name:        StepConfigure,
		Description: "generate native build system",
		Command:     renderCommand("cmake", cm.ConfigureArgs(opts.CMakeArgs...)),
	}
	switch {
	case opts.ForceConfigure:
		configure.Reason = "generator arguments supplied"
	case !cmake.Configured(opts.BuildDir):
		configure.Reason = "no generator cache in build directory"
	default:
		configure.Skipped = true
		if gen := cmake.CachedGenerator(opts.BuildDir); gen != "" {
			configure.Reason = fmt.Sprintf("reusing cached generator %q", gen)
		} else {
			configure.Reason = "generator cache present"
		}
	}
	if !configure.Skipped {
		configure.run = func() error {
			return cm.Configure(opts.CMakeArgs...)
		}
	}
	steps = append(steps, configure)

	steps = append(steps, Step{
		Name:        StepBuildHDK,
		Description: "build native HDK plugin",
		Command:     renderCommand("cmake", cm.BuildArgs()),
		run:         cm.Build,
	})

	crateBuild := Step{
		Name:        StepBuildCrate,
		Description: "build crate",
	}
	if opts.HdkOnly {
		crateBuild.Skipped = true
		crateBuild.Reason = "--hdk-only"
	} else {
		cg := cargo.New(opts.CrateRoot, opts.Runner)
		crateBuild.Command = renderCommand(cg.Bin(), cg.BuildArgs(opts.Mode, opts.CargoArgs...))
		crateBuild.run = func() error {
			return cg.Build(opts.Mode, opts.CargoArgs...)
		}
	}
	steps = append(steps, crateBuild)

	return &Plan{Steps: steps}
}

// NewClean assembles the clean pipeline: remove the build output tree,
// resetting the generator cache, and drop the crate's artifacts unless
// --hdk-only. No build steps run in a clean invocation.
func NewClean(opts Options) *Plan {
	steps := []Step{{
		Name:        StepClean,
		Description: fmt.Sprintf("remove build directory %s", opts.BuildDir),
		run: func() error {
			return os.RemoveAll(opts.BuildDir)
		},
	}}

	if !opts.HdkOnly {
		cg := cargo.New(opts.CrateRoot, opts.Runner)
		steps = append(steps, Step{
			Name:        StepClean,
			Description: "remove crate artifacts",
			Command:     renderCommand(cg.Bin(), append([]string{"clean"}, opts.CargoArgs...)),
			run: func() error {
				return cg.Clean(opts.CargoArgs...)
			},
		})
	}

	return &Plan{Steps: steps}
}

// Execute runs the steps in order, stopping at the first failure.
func (p *Plan) Execute(log *output.Logger) error {
	for _, step := range p.Steps {
		if step.Skipped {
			log.Stepf(step.Name, "skipped: %s", step.Reason)
			continue
		}
		if step.Reason != "" {
			log.Stepf(step.Name, "%s (%s)", step.Description, step.Reason)
		} else {
			log.Stepf(step.Name, "%s", step.Description)
		}
		if step.Command != "" {
			log.Debugf("  %s", step.Command)
		}
		if err := step.run(); err != nil {
			return &StepError{Step: step.Name, Err: err}
		}
	}
	return nil
}

// String renders the plan for the text dry-run output.
func (p *Plan) String() string {
	var b strings.Builder
	for _, step := range p.Steps {
		if step.Skipped {
			fmt.Fprintf(&b, "- %s: skipped (%s)\n", step.Name, step.Reason)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", step.Name, step.Description)
		if step.Command != "" {
			fmt.Fprintf(&b, "    %s\n", step.Command)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderCommand(name string, args []string) string {
	parts := append([]string{name}, args...)
	for i, p := range parts {
		if strings.ContainsAny(p, " \t") {
			parts[i] = "'" + p + "'"
		}
	}
	return strings.Join(parts, " ")
}
