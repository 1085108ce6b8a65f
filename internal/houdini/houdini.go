// Package houdini discovers the Houdini installation the HDK build compiles
// against. The SDK's own build scripts consume the HFS environment variable;
// this package only resolves it and leaves interpretation to CMake.
package houdini

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultVersions is the probe order used when HFS is unset and no versions
// are configured. Newest first.
var DefaultVersions = []string{"21.0", "20.5", "20.0", "19.5"}

// installPrefix is where SideFX installers place Houdini on Linux.
const installPrefix = "/opt/hfs"

// Install describes a resolved Houdini installation.
type Install struct {
	Root    string // installation directory, exported as HFS
	FromEnv bool   // true when taken from the HFS environment variable
}

// Finder locates a Houdini installation. The zero value is not usable; call
// NewFinder.
type Finder struct {
	Versions []string

	// Injection points for tests.
	getenv func(string) string
	stat   func(string) (os.FileInfo, error)
	prefix string
}

// NewFinder returns a Finder probing the given versions, or DefaultVersions
// when nil.
func NewFinder(versions []string) *Finder {
	if len(versions) == 0 {
		versions = DefaultVersions
	}
	return &Finder{
		Versions: versions,
		getenv:   os.Getenv,
		stat:     os.Stat,
		prefix:   installPrefix,
	}
}

// Find resolves the Houdini installation: the HFS environment variable wins,
// then typical installation paths are probed in version order. A miss is a
// configuration error reported before anything is spawned.
func (f *Finder) Find() (*Install, error) {
	if hfs := f.getenv("HFS"); hfs != "" {
		return &Install{Root: hfs, FromEnv: true}, nil
	}
	for _, version := range f.Versions {
		path := f.prefix + version
		if _, err := f.stat(path); err == nil {
			return &Install{Root: path}, nil
		}
	}
	return nil, fmt.Errorf("couldn't find HFS: please source 'houdini_setup' from Houdini's installation directory or set the HFS environment variable to the Houdini installation path")
}

// Environ returns base with HFS set to the installation root and the
// installation's bin directory appended to PATH. hserver may need to verify
// the license during a build, so the bin directory must be reachable.
func (i *Install) Environ(base []string) []string {
	env := make([]string, 0, len(base)+2)
	var path string
	for _, kv := range base {
		if strings.HasPrefix(kv, "HFS=") {
			continue
		}
		if strings.HasPrefix(kv, "PATH=") {
			path = strings.TrimPrefix(kv, "PATH=")
			continue
		}
		env = append(env, kv)
	}

	bin := filepath.Join(i.Root, "bin")
	if path == "" {
		path = bin
	} else {
		path = path + string(os.PathListSeparator) + bin
	}

	env = append(env, "HFS="+i.Root, "PATH="+path)
	return env
}
