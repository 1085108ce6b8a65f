// Package brackets parses the bracket-delimited argument lists accepted by
// flags like --cmake. Arguments are expected between square brackets, e.g.
// '[-G Ninja]', and are split on whitespace without further interpretation so
// the tokens reach the underlying tool unmodified.
package brackets

import (
	"fmt"
	"strings"
)

// Parse splits a bracket-delimited list into its tokens. An empty string
// yields no tokens and no error. A non-empty string that is not surrounded by
// '[' and ']' is a usage error.
func Parse(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("argument list %q must be surrounded with square brackets '[' and ']'", s)
	}
	return strings.Fields(s[1 : len(s)-1]), nil
}
