package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFromFlags(t *testing.T) {
	tests := []struct {
		name      string
		quiet     bool
		verbosity int
		want      Level
	}{
		{"quiet wins", true, 3, LevelQuiet},
		{"default", false, 0, LevelNormal},
		{"-v", false, 1, LevelVerbose},
		{"-vv", false, 2, LevelDebug},
		{"-vvv", false, 3, LevelTrace},
		{"-vvvv clamps", false, 4, LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFromFlags(tt.quiet, tt.verbosity); got != tt.want {
				t.Errorf("LevelFromFlags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoggerFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LevelNormal)

	log.Errorf("broke: %s", "badly")
	log.Stepf("configure", "running cmake")
	log.Infof("hidden info")
	log.Debugf("hidden debug")

	out := buf.String()
	if !strings.Contains(out, "error: broke: badly") {
		t.Errorf("output %q missing error line", out)
	}
	if !strings.Contains(out, "[configure] running cmake") {
		t.Errorf("output %q missing step line", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("output %q should not contain filtered lines", out)
	}
}

func TestLoggerQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LevelQuiet)

	log.Stepf("clean", "removing")
	log.Warnf("ignored")
	log.Errorf("still shown")

	out := buf.String()
	if strings.Contains(out, "removing") || strings.Contains(out, "ignored") {
		t.Errorf("quiet output %q should only contain errors", out)
	}
	if !strings.Contains(out, "still shown") {
		t.Errorf("quiet output %q must keep errors", out)
	}
}

func TestWriterFormats(t *testing.T) {
	type plan struct {
		Name string `json:"name" yaml:"name"`
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(&buf, FormatJSON).Write(plan{Name: "configure"}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if !strings.Contains(buf.String(), `"name": "configure"`) {
			t.Errorf("json output = %q", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(&buf, FormatYAML).Write(plan{Name: "configure"}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if !strings.Contains(buf.String(), "name: configure") {
			t.Errorf("yaml output = %q", buf.String())
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
