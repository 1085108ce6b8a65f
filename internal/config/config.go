// Package config handles Hdk project-file parsing and location resolution.
//
// The project file is optional; it carries defaults for flags so a crate can
// pin its plugin directory, preferred generator arguments and Houdini probe
// order without every contributor retyping them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the parsed Hdk project file. All fields are optional; zero values
// defer to built-in defaults or command-line flags.
type Config struct {
	// HdkPath is the plugin directory relative to the crate root.
	HdkPath string `yaml:"hdk_path,omitempty" toml:"hdk_path,omitempty" json:"hdk_path,omitempty"`

	// CMakeArgs are default configure arguments, used whenever a configure
	// step runs and no --cmake list was given on the command line.
	CMakeArgs []string `yaml:"cmake_args,omitempty" toml:"cmake_args,omitempty" json:"cmake_args,omitempty"`

	// HoudiniVersions overrides the probe order for /opt/hfs<version> when
	// HFS is unset.
	HoudiniVersions []string `yaml:"houdini_versions,omitempty" toml:"houdini_versions,omitempty" json:"houdini_versions,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{HdkPath: "./hdk"}
}

// fileNames are the recognized project file names, in preference order.
var fileNames = []string{"Hdk.toml", "Hdk.yaml", "Hdk.yml", "Hdk.json"}

// Find locates the project file. An explicit path must exist; otherwise the
// directories from dir upward are searched for a recognized file name. An
// empty return with nil error means no project file, which is not an error.
func Find(explicit, dir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}
	for cur := abs; ; cur = filepath.Dir(cur) {
		for _, name := range fileNames {
			candidate := filepath.Join(cur, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}
		if filepath.Dir(cur) == cur {
			return "", nil
		}
	}
}

// Load reads and parses the project file at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := detectFormat(path, content)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unable to determine format of %s", path)
	}

	cfg, err := parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
