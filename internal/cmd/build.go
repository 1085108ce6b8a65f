package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hdktools/cargo-hdk/internal/brackets"
	"github.com/hdktools/cargo-hdk/internal/cmake"
	"github.com/hdktools/cargo-hdk/internal/config"
	"github.com/hdktools/cargo-hdk/internal/crate"
	"github.com/hdktools/cargo-hdk/internal/houdini"
	"github.com/hdktools/cargo-hdk/internal/interactive"
	"github.com/hdktools/cargo-hdk/internal/output"
	"github.com/hdktools/cargo-hdk/internal/pipeline"
	"github.com/hdktools/cargo-hdk/internal/process"
	"github.com/hdktools/cargo-hdk/internal/types"
)

// runBuild executes the build (or clean) workflow.
func runBuild(cmd *cobra.Command, args []string) error {
	log := output.NewLogger(os.Stderr, output.LevelFromFlags(quiet, verbosity))

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// 1. Load the optional project file.
	cfg := config.Default()
	cfgPath, err := config.Find(configPath, cwd)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		log.Infof("using project file %s", cfgPath)
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}

	// 2. Resolve the crate root and plugin directories.
	crateRoot, err := crate.FindRoot(cwd)
	if err != nil {
		return err
	}
	log.Debugf("crate root: %s", crateRoot)

	hdkPath := hdkPathFlag
	if hdkPath == "" {
		hdkPath = cfg.HdkPath
	}
	if hdkPath == "" {
		hdkPath = "./hdk"
	}
	pluginDir := hdkPath
	if !filepath.IsAbs(pluginDir) {
		pluginDir = filepath.Join(crateRoot, pluginDir)
	}

	mode := types.ModeDebug
	if releaseMode {
		mode = types.ModeRelease
	}
	// The build directory is a pure function of the plugin directory and
	// the mode.
	buildDir := filepath.Join(pluginDir, mode.DirName())
	log.Debugf("build directory: %s (%s)", buildDir, mode)

	// 3. Parse generator arguments. Supplying --cmake, even empty, forces a
	// configure step.
	forceConfigure := cmd.Flags().Changed("cmake")
	var cmakeArgs []string
	if forceConfigure {
		if cmakeArgs, err = brackets.Parse(cmakeList); err != nil {
			return err
		}
	} else {
		cmakeArgs = cfg.CMakeArgs
	}

	runner := &process.OSRunner{}
	opts := pipeline.Options{
		Mode:           mode,
		CrateRoot:      crateRoot,
		PluginDir:      pluginDir,
		BuildDir:       buildDir,
		CMakeArgs:      cmakeArgs,
		ForceConfigure: forceConfigure,
		HdkOnly:        hdkOnly,
		CargoArgs:      args,
		Runner:         runner,
	}

	// 4. Clean is exclusive: no build steps run in a clean invocation.
	if cleanBuild {
		if !dryRun && !assumeYes && interactive.IsTerminal() {
			ok, err := interactive.NewPrompter().Confirm(fmt.Sprintf("Remove build directory %s?", buildDir))
			if err != nil {
				return err
			}
			if !ok {
				log.Infof("clean aborted")
				return nil
			}
		}
		plan := pipeline.NewClean(opts)
		if dryRun {
			return writePlan(plan, format)
		}
		return plan.Execute(log)
	}

	// 5. Pre-flight checks, before anything is spawned.
	if info, err := os.Stat(pluginDir); err != nil || !info.IsDir() {
		return fmt.Errorf("plugin directory %s does not exist (run 'cargo-hdk init' to scaffold one)", pluginDir)
	}
	if forceConfigure || !cmake.Configured(buildDir) {
		if _, err := os.Stat(filepath.Join(pluginDir, "CMakeLists.txt")); err != nil {
			return fmt.Errorf("no CMakeLists.txt in %s", pluginDir)
		}
	}

	// 6. Houdini discovery. The SDK location is exported to the child
	// processes; CMake interprets it, not us.
	install, err := houdini.NewFinder(cfg.HoudiniVersions).Find()
	if err != nil {
		if !dryRun {
			return err
		}
		log.Warnf("%v", err)
	} else {
		if install.FromEnv {
			log.Infof("using Houdini installation from HFS: %s", install.Root)
		} else {
			log.Infof("using Houdini installation at %s", install.Root)
		}
		runner.Env = install.Environ(os.Environ())
	}

	plan := pipeline.NewBuild(opts)
	if dryRun {
		return writePlan(plan, format)
	}
	return plan.Execute(log)
}

// writePlan renders a dry-run plan to stdout in the requested format.
func writePlan(plan *pipeline.Plan, format output.Format) error {
	return output.NewWriter(os.Stdout, format).Write(plan)
}
