// Package output handles diagnostic logging and formatted plan output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Level controls diagnostic granularity. It has no effect on build semantics.
type Level int

const (
	LevelQuiet   Level = iota // errors only
	LevelNormal               // step announcements
	LevelVerbose              // -v: informational detail
	LevelDebug                // -vv: derived paths and decisions
	LevelTrace                // -vvv and up: everything
)

// LevelFromFlags maps the -q/-v flag surface onto a Level. Extra -v
// repetitions beyond trace are clamped.
func LevelFromFlags(quiet bool, verbosity int) Level {
	if quiet {
		return LevelQuiet
	}
	level := LevelNormal + Level(verbosity)
	if level > LevelTrace {
		level = LevelTrace
	}
	return level
}

// Logger writes leveled diagnostics. Colors are enabled only when the
// destination is a terminal.
type Logger struct {
	level   Level
	w       io.Writer
	colored bool
}

// NewLogger creates a logger writing to w at the given level.
func NewLogger(w io.Writer, level Level) *Logger {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = term.IsTerminal(int(f.Fd()))
	}
	return &Logger{level: level, w: w, colored: colored}
}

// Level returns the configured level.
func (l *Logger) Level() Level { return l.level }

// Stepf announces a pipeline step. Shown unless quiet.
func (l *Logger) Stepf(name, format string, a ...any) {
	if l.level < LevelNormal {
		return
	}
	msg := fmt.Sprintf(format, a...)
	if l.colored {
		fmt.Fprintf(l.w, "%s %s\n", color.Cyan.Sprintf("[%s]", name), msg)
		return
	}
	fmt.Fprintf(l.w, "[%s] %s\n", name, msg)
}

// Errorf reports a failure. Always shown.
func (l *Logger) Errorf(format string, a ...any) {
	l.printf(LevelQuiet, color.Danger, "error: "+format, a...)
}

// Warnf reports a non-fatal anomaly. Shown unless quiet.
func (l *Logger) Warnf(format string, a ...any) {
	l.printf(LevelNormal, color.Warn, "warning: "+format, a...)
}

// Infof reports progress detail. Shown with -v.
func (l *Logger) Infof(format string, a ...any) {
	l.printf(LevelVerbose, nil, format, a...)
}

// Debugf reports derived values and decisions. Shown with -vv.
func (l *Logger) Debugf(format string, a ...any) {
	l.printf(LevelDebug, color.Comment, format, a...)
}

// Tracef reports everything else. Shown with -vvv.
func (l *Logger) Tracef(format string, a ...any) {
	l.printf(LevelTrace, color.Comment, format, a...)
}

func (l *Logger) printf(min Level, style *color.Theme, format string, a ...any) {
	if l.level < min {
		return
	}
	msg := fmt.Sprintf(format, a...)
	if l.colored && style != nil {
		fmt.Fprintln(l.w, style.Sprint(msg))
		return
	}
	fmt.Fprintln(l.w, msg)
}

// Format represents an output format for structured data such as the
// resolved build plan.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Writer handles output in the specified format.
type Writer struct {
	format Format
	w      io.Writer
}

// NewWriter creates a new output writer.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{format: format, w: w}
}

// Write outputs the given value in the configured format.
func (w *Writer) Write(v interface{}) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w.w)
		enc.SetIndent(2)
		return enc.Encode(v)
	default:
		// Text format - assume v implements fmt.Stringer or use default
		if s, ok := v.(fmt.Stringer); ok {
			_, err := fmt.Fprintln(w.w, s.String())
			return err
		}
		_, err := fmt.Fprintf(w.w, "%+v\n", v)
		return err
	}
}

// ParseFormat parses a format string into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}
