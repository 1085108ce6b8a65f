package main

import (
	"fmt"
	"os"

	"github.com/hdktools/cargo-hdk/internal/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cmd.Execute(version, commit, date); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cmd.ExitCodeFor(err))
	}
}
