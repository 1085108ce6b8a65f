package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hdktools/cargo-hdk/internal/crate"
	"github.com/hdktools/cargo-hdk/internal/templates"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Scaffold an HDK plugin directory",
		Long: `Init writes a starter hdk/ directory (CMakeLists.txt and a minimal SOP
source) plus an Hdk.toml project file into the crate root.

The plugin name defaults to the crate directory's name. Existing files are
never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runInit(name)
		},
	}
	return cmd
}

func runInit(name string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	crateRoot, err := crate.FindRoot(cwd)
	if err != nil {
		return err
	}

	if name == "" {
		name = filepath.Base(crateRoot)
		if err := templates.ValidateName(name); err != nil {
			return fmt.Errorf("crate directory %q is not usable as a plugin name; pass one explicitly: cargo-hdk init <name>", name)
		}
	}

	written, err := templates.Scaffold(crateRoot, name)
	if err != nil {
		return err
	}

	if !quiet {
		for _, path := range written {
			rel, relErr := filepath.Rel(crateRoot, path)
			if relErr != nil {
				rel = path
			}
			fmt.Printf("created %s\n", rel)
		}
	}
	return nil
}
