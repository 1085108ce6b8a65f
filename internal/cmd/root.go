package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/hdktools/cargo-hdk/internal/pipeline"
)

var (
	// Global flags
	releaseMode  bool
	cleanBuild   bool
	assumeYes    bool
	hdkOnly      bool
	cmakeList    string
	hdkPathFlag  string
	configPath   string
	dryRun       bool
	outputFormat string
	verbosity    int
	quiet        bool
)

func Execute(version, commit, date string) error {
	rootCmd := &cobra.Command{
		Use:   "cargo-hdk [flags] [-- cargo build args]",
		Short: "Build a Houdini HDK plugin alongside a Rust crate",
		Long: `cargo-hdk orchestrates a CMake build of the C++ HDK plugin and a
'cargo build' of the crate it belongs to.

The CMake generator is chosen on the first configure of a build directory and
reused from CMake's own cache afterwards. Pass generator arguments between
brackets, e.g.:

  cargo-hdk --cmake '[-G Ninja]'

Remaining arguments after '--' are forwarded verbatim to 'cargo build'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE:          runBuild,
	}

	rootCmd.Flags().BoolVar(&releaseMode, "release", false, "Build in release mode (default is debug)")
	rootCmd.Flags().StringVar(&cmakeList, "cmake", "", "Bracket-delimited CMake configure arguments, e.g. '[-G Ninja]'; forces a configure step")
	rootCmd.Flags().BoolVar(&cleanBuild, "clean", false, "Remove the build output directory instead of building")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt for --clean")
	rootCmd.Flags().BoolVarP(&hdkOnly, "hdk-only", "k", false, "Skip the cargo step; build only the HDK plugin")
	rootCmd.Flags().StringVar(&hdkPathFlag, "hdk-path", "", "Plugin directory relative to the crate root (default ./hdk)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the resolved step plan without running anything")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the Hdk project file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Plan output format: text, json, yaml")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase diagnostic verbosity (repeatable, up to -vvvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))
	rootCmd.AddCommand(newCompletionCmd())

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	// When invoked through cargo ('cargo hdk ...'), cargo passes the
	// subcommand name as the first argument. Drop it.
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "hdk" {
		args = args[1:]
	}
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// ExitCodeFor maps an error returned by Execute to the tool's exit code:
// the failing subprocess's code for step failures, 2 for pre-flight
// configuration and usage errors.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var stepErr *pipeline.StepError
	if errors.As(err, &stepErr) {
		return stepErr.ExitCode()
	}
	return 2
}
