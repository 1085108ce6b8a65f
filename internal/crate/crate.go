// Package crate locates the root of the Rust crate the plugin belongs to.
package crate

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot walks up from dir until it finds a directory containing a
// Cargo.toml manifest file. Cargo does not expose the crate root to
// subcommands, so we derive it the same way cargo itself does.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	cur := abs
	for {
		manifest := filepath.Join(cur, "Cargo.toml")
		if info, err := os.Stat(manifest); err == nil && info.Mode().IsRegular() {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("couldn't find Cargo.toml in %s or any parent directory", abs)
		}
		cur = parent
	}
}
