package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values that would otherwise only
// fail later, deep inside a build step.
func (c *Config) Validate() error {
	for i, arg := range c.CMakeArgs {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("cmake_args[%d] is empty", i)
		}
	}

	for i, v := range c.HoudiniVersions {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("houdini_versions[%d] is empty", i)
		}
		if strings.ContainsAny(v, "/\\") {
			return fmt.Errorf("houdini_versions[%d]: %q is not a version number", i, v)
		}
	}

	return nil
}
