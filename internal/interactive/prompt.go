// Package interactive provides interactive prompts for user confirmation.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks yes/no questions on a terminal.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a prompter with stdin/stdout.
func NewPrompter() *Prompter {
	return NewPrompterWithIO(os.Stdin, os.Stdout)
}

// NewPrompterWithIO creates a prompter with custom input/output (for testing).
func NewPrompterWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// IsTerminal checks if stdin is a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Confirm asks a yes/no question, defaulting to no. EOF counts as no.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(p.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read response: %w", err)
		}
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
