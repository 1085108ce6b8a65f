// Package templates provides the embedded scaffolding written by
// 'cargo-hdk init': a minimal CMake project and SOP source the HDK build can
// compile, plus a starter project file.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

//go:embed all:scaffold
var scaffoldFS embed.FS

// namePattern restricts plugin names to identifiers usable in both CMake
// target names and C++ symbols.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// nameToken marks the spots in file names and contents where the plugin name
// is substituted.
const nameToken = "NAME"

// File is one rendered scaffold file, with a path relative to the plugin
// directory.
type File struct {
	Path    string
	Content []byte
}

// ValidateName checks that name can be used as a plugin name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid plugin name %q (must start with a letter and contain only letters, digits and underscores)", name)
	}
	return nil
}

// Render produces the scaffold files for a plugin with the given name.
func Render(name string) ([]File, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var files []File
	err := fs.WalkDir(scaffoldFS, "scaffold", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := scaffoldFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}
		rel := strings.TrimPrefix(path, "scaffold/")
		files = append(files, File{
			Path:    strings.ReplaceAll(rel, nameToken, name),
			Content: []byte(strings.ReplaceAll(string(content), nameToken, name)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Scaffold writes the rendered files under dir. Existing files are never
// overwritten; hitting one aborts before anything is written.
func Scaffold(dir, name string) ([]string, error) {
	files, err := Render(name)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if _, err := os.Stat(target); err == nil {
			return nil, fmt.Errorf("refusing to overwrite existing file %s", target)
		}
	}

	var written []string
	for _, f := range files {
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", target, err)
		}
		if err := os.WriteFile(target, f.Content, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
