// Package types provides type-safe constants shared across the build
// orchestration code, replacing magic strings with typed values that carry
// their own validation and derived names.
package types

import "fmt"

// BuildMode selects between a debug and a release build. It is chosen once
// per invocation and drives both the CMake configuration and the cargo flags.
type BuildMode string

const (
	// ModeDebug is the default build mode.
	ModeDebug BuildMode = "debug"
	// ModeRelease is selected with --release.
	ModeRelease BuildMode = "release"
)

// AllBuildModes returns all valid build modes.
func AllBuildModes() []BuildMode {
	return []BuildMode{ModeDebug, ModeRelease}
}

// Validate checks if the BuildMode is a valid value.
func (m BuildMode) Validate() error {
	switch m {
	case ModeDebug, ModeRelease:
		return nil
	case "":
		return fmt.Errorf("build mode is required")
	default:
		return fmt.Errorf("invalid build mode '%s' (must be debug or release)", m)
	}
}

// CMakeName returns the value passed as CMAKE_BUILD_TYPE.
func (m BuildMode) CMakeName() string {
	if m == ModeRelease {
		return "Release"
	}
	return "Debug"
}

// DirName returns the name of the build output directory under the plugin
// source directory. The mapping is fixed: release builds land in "build",
// debug builds in "build_debug".
func (m BuildMode) DirName() string {
	if m == ModeRelease {
		return "build"
	}
	return "build_debug"
}

// CargoFlags returns the flags forwarded to 'cargo build' for this mode.
// Debug is cargo's default and needs no flag.
func (m BuildMode) CargoFlags() []string {
	if m == ModeRelease {
		return []string{"--release"}
	}
	return nil
}

func (m BuildMode) String() string {
	return string(m)
}
