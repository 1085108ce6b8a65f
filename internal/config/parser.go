package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format represents the file format of a project file.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatTOML
	FormatJSON
)

// detectFormat determines the file format based on extension or content.
func detectFormat(path string, content []byte) Format {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	}

	// Content sniffing for extensionless files
	return sniffFormat(content)
}

// sniffFormat attempts to detect format from content.
func sniffFormat(content []byte) Format {
	trimmed := strings.TrimSpace(string(content))

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return FormatJSON
	}

	if strings.Contains(trimmed, " = ") || strings.HasPrefix(trimmed, "[") {
		for _, line := range strings.Split(trimmed, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if strings.Contains(line, " = ") || strings.HasPrefix(line, "[") {
				return FormatTOML
			}
			if strings.Contains(line, ":") && !strings.Contains(line, "=") {
				return FormatYAML
			}
		}
	}

	if strings.Contains(trimmed, ":") {
		return FormatYAML
	}

	return FormatUnknown
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns in content.
func expandEnvVars(content []byte) []byte {
	return envVarPattern.ReplaceAllFunc(content, func(match []byte) []byte {
		parts := envVarPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := os.Getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}

// parse parses the content according to the specified format.
func parse(content []byte, format Format) (*Config, error) {
	// Expand environment variables first
	content = expandEnvVars(content)

	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("JSON parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown file format")
	}

	return &cfg, nil
}
