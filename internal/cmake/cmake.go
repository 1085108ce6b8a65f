// Package cmake drives the CMake configure/build workflow for the HDK plugin.
package cmake

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/hdktools/cargo-hdk/internal/process"
	"github.com/hdktools/cargo-hdk/internal/types"
)

// CacheFile is the file CMake writes into the build directory on a
// successful configure. Its presence is the generator cache marker: CMake's
// own persisted state is the source of truth for whether a generator was
// already chosen.
const CacheFile = "CMakeCache.txt"

// CMake drives CMake-based builds of a single source tree.
type CMake struct {
	sourceDir string
	buildDir  string
	buildType string
	runner    process.Runner
}

// New returns a ready-to-use CMake driver.
func New(sourceDir, buildDir string, runner process.Runner) *CMake {
	return &CMake{
		sourceDir: sourceDir,
		buildDir:  buildDir,
		runner:    runner,
	}
}

// BuildType sets CMAKE_BUILD_TYPE from the build mode.
func (c *CMake) BuildType(mode types.BuildMode) {
	c.buildType = mode.CMakeName()
}

// ConfigureArgs returns the argument vector of the configure step. Extra
// args are appended verbatim after the mode definition.
func (c *CMake) ConfigureArgs(extra ...string) []string {
	args := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.buildType != "" {
		args = append(args, "-DCMAKE_BUILD_TYPE="+c.buildType)
	}
	return append(args, extra...)
}

// Configure runs the generate step: "cmake -S <source> -B <build>".
func (c *CMake) Configure(extra ...string) error {
	return c.runner.Run("", "cmake", c.ConfigureArgs(extra...)...)
}

// BuildArgs returns the argument vector of the build step. Parallelism is
// left to the generator's defaults.
func (c *CMake) BuildArgs() []string {
	return []string{"--build", c.buildDir}
}

// Build runs "cmake --build <build>".
func (c *CMake) Build() error {
	return c.runner.Run("", "cmake", c.BuildArgs()...)
}

// Configured reports whether buildDir holds a prior configure result. The
// state is probed fresh from disk on every call, never cached in memory.
func Configured(buildDir string) bool {
	info, err := os.Stat(filepath.Join(buildDir, CacheFile))
	return err == nil && info.Mode().IsRegular()
}

// CachedGenerator returns the generator recorded in the CMake cache, or ""
// when the cache is absent or does not record one. Used for diagnostics only;
// the decision to reconfigure depends solely on the cache file's presence.
func CachedGenerator(buildDir string) string {
	f, err := os.Open(filepath.Join(buildDir, CacheFile))
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "CMAKE_GENERATOR:INTERNAL="); ok {
			return v
		}
	}
	return ""
}
