package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdktools/cargo-hdk/internal/cmake"
	"github.com/hdktools/cargo-hdk/internal/output"
	"github.com/hdktools/cargo-hdk/internal/types"
)

// fakeRunner records invocations. When a cmake configure runs it writes the
// cache file, mimicking the real tool; commands whose arguments contain
// failOn return failErr.
type fakeRunner struct {
	calls    [][]string
	buildDir string
	failOn   string
	failErr  error
}

func (r *fakeRunner) Run(dir, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	joined := strings.Join(args, " ")
	if r.failOn != "" && strings.Contains(joined, r.failOn) {
		return r.failErr
	}
	if name == "cmake" && len(args) > 0 && args[0] == "-S" {
		cache := filepath.Join(r.buildDir, cmake.CacheFile)
		return os.WriteFile(cache, []byte("CMAKE_GENERATOR:INTERNAL=Unix Makefiles\n"), 0o644)
	}
	return nil
}

func (r *fakeRunner) commands() []string {
	var out []string
	for _, call := range r.calls {
		out = append(out, strings.Join(call, " "))
	}
	return out
}

func testLogger() *output.Logger {
	return output.NewLogger(&bytes.Buffer{}, output.LevelQuiet)
}

func testOptions(t *testing.T, r *fakeRunner) Options {
	t.Helper()
	root := t.TempDir()
	pluginDir := filepath.Join(root, "hdk")
	buildDir := filepath.Join(pluginDir, "build_debug")
	require.NoError(t, os.MkdirAll(pluginDir, 0o755))
	r.buildDir = buildDir
	return Options{
		Mode:      types.ModeDebug,
		CrateRoot: root,
		PluginDir: pluginDir,
		BuildDir:  buildDir,
		Runner:    r,
	}
}

func TestFreshBuildConfigures(t *testing.T) {
	r := &fakeRunner{}
	opts := testOptions(t, r)

	plan := NewBuild(opts)
	require.NoError(t, plan.Execute(testLogger()))

	cmds := r.commands()
	require.Len(t, cmds, 3)
	assert.Contains(t, cmds[0], "cmake -S "+opts.PluginDir)
	assert.Contains(t, cmds[0], "-DCMAKE_BUILD_TYPE=Debug")
	assert.Contains(t, cmds[1], "cmake --build "+opts.BuildDir)
	assert.Contains(t, cmds[2], "cargo build")
	assert.True(t, cmake.Configured(opts.BuildDir))
}

func TestSecondBuildSkipsConfigure(t *testing.T) {
	r := &fakeRunner{}
	opts := testOptions(t, r)

	require.NoError(t, NewBuild(opts).Execute(testLogger()))
	firstCalls := len(r.calls)
	require.Equal(t, 3, firstCalls)

	// Marker exists now; a second plan with no generator args must skip
	// the configure step.
	require.NoError(t, NewBuild(opts).Execute(testLogger()))
	cmds := r.commands()[firstCalls:]
	require.Len(t, cmds, 2)
	assert.Contains(t, cmds[0], "cmake --build")
	assert.Contains(t, cmds[1], "cargo build")
}

func TestGeneratorArgsForceConfigure(t *testing.T) {
	r := &fakeRunner{}
	opts := testOptions(t, r)

	require.NoError(t, os.MkdirAll(opts.BuildDir, 0o755))
	cache := filepath.Join(opts.BuildDir, cmake.CacheFile)
	require.NoError(t, os.WriteFile(cache, []byte("CMAKE_GENERATOR:INTERNAL=Ninja\n"), 0o644))

	opts.ForceConfigure = true
	opts.CMakeArgs = []string{"-G", "Ninja"}

	require.NoError(t, NewBuild(opts).Execute(testLogger()))

	cmds := r.commands()
	require.Len(t, cmds, 3)
	assert.Contains(t, cmds[0], "-G Ninja", "user tokens must be forwarded unmodified")
}

func TestFailingNativeBuildShortCircuits(t *testing.T) {
	r := &fakeRunner{failOn: "--build", failErr: errors.New("link error")}
	opts := testOptions(t, r)

	err := NewBuild(opts).Execute(testLogger())
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepBuildHDK, stepErr.Step)

	for _, cmd := range r.commands() {
		assert.NotContains(t, cmd, "cargo", "cargo must not run after a native build failure")
	}
}

func TestFailingConfigureShortCircuits(t *testing.T) {
	r := &fakeRunner{failOn: "-S", failErr: errors.New("generator not found")}
	opts := testOptions(t, r)

	err := NewBuild(opts).Execute(testLogger())
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepConfigure, stepErr.Step)
	require.Len(t, r.calls, 1)
}

func TestHdkOnlySkipsCrateBuild(t *testing.T) {
	r := &fakeRunner{}
	opts := testOptions(t, r)
	opts.HdkOnly = true

	require.NoError(t, NewBuild(opts).Execute(testLogger()))
	for _, cmd := range r.commands() {
		assert.NotContains(t, cmd, "cargo")
	}
}

func TestCleanResetsGeneratorCache(t *testing.T) {
	r := &fakeRunner{}
	opts := testOptions(t, r)

	require.NoError(t, NewBuild(opts).Execute(testLogger()))
	require.True(t, cmake.Configured(opts.BuildDir))

	opts.HdkOnly = true // keep the clean plan filesystem-only for this test
	require.NoError(t, NewClean(opts).Execute(testLogger()))

	assert.False(t, cmake.Configured(opts.BuildDir), "cache marker must be absent immediately after clean")
	_, err := os.Stat(opts.BuildDir)
	assert.True(t, os.IsNotExist(err))
}

func TestCleanInvokesCargoClean(t *testing.T) {
	r := &fakeRunner{}
	opts := testOptions(t, r)

	require.NoError(t, NewClean(opts).Execute(testLogger()))

	cmds := r.commands()
	require.Len(t, cmds, 1)
	assert.Contains(t, cmds[0], "cargo clean")
}

func TestPassThroughArgsReachCargo(t *testing.T) {
	r := &fakeRunner{}
	opts := testOptions(t, r)
	opts.Mode = types.ModeRelease
	opts.BuildDir = filepath.Join(opts.PluginDir, "build")
	r.buildDir = opts.BuildDir
	opts.CargoArgs = []string{"--features", "gpu"}

	require.NoError(t, NewBuild(opts).Execute(testLogger()))

	cmds := r.commands()
	assert.Contains(t, cmds[len(cmds)-1], "cargo build --release --features gpu")
}

func TestPlanRendering(t *testing.T) {
	r := &fakeRunner{}
	opts := testOptions(t, r)

	plan := NewBuild(opts)
	text := plan.String()
	assert.Contains(t, text, StepPrepare)
	assert.Contains(t, text, StepConfigure)
	assert.Contains(t, text, StepBuildHDK)
	assert.Contains(t, text, StepBuildCrate)
	assert.Empty(t, r.calls, "building and rendering a plan must not spawn anything")
}
