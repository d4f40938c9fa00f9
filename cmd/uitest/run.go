package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"uitest/internal/build"
	"uitest/internal/check"
	"uitest/internal/harness"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <file>...",
	Short: "Run compiler UI tests",
	Long: `Invoke the configured compiler on each test file and verify exit status,
baseline output files and diagnostics. Revisions multiply files into
independent runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTests,
}

func init() {
	runCmd.Flags().String("program", "", "compiler binary to invoke (overrides uitest.toml)")
	runCmd.Flags().String("out-dir", "", "artifact directory (overrides uitest.toml)")
	runCmd.Flags().String("root", "", "directory test paths are made relative to")
	runCmd.Flags().String("target", "", "target platform triple")
	runCmd.Flags().Bool("bless", false, "overwrite baselines with actual output")
	runCmd.Flags().Bool("ignore-output", false, "skip baseline comparison")
	runCmd.Flags().StringArray("revision", nil, "revision names to instantiate for every file")
	runCmd.Flags().Int("jobs", 0, "concurrent tests (0 = one per CPU)")
	runCmd.Flags().String("mode", "fail", "default test mode (pass|panic|fail|yolo)")
	runCmd.Flags().Int("exit-code", 1, "exit code fail mode expects")
	runCmd.Flags().Bool("aux-cache", false, "memoize aux build results on disk")
}

func runTests(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	revisions, err := cmd.Flags().GetStringArray("revision")
	if err != nil {
		return err
	}
	if len(revisions) == 0 {
		revisions = []string{""}
	}

	var tests []harness.Test
	for _, path := range args {
		for _, rev := range revisions {
			tests = append(tests, harness.Test{Path: path, Revision: rev})
		}
	}

	opts := harness.Options{}
	if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return err
	}
	if useCache, err := cmd.Flags().GetBool("aux-cache"); err != nil {
		return err
	} else if useCache {
		cache, err := build.OpenDiskCache("uitest")
		if err != nil {
			return fmt.Errorf("opening aux build cache: %w", err)
		}
		opts.Manager = build.NewManager(cache)
	}

	results := harness.Run(cmd.Context(), cfg, tests, opts)

	reporter := harness.NewReporter(cmd.OutOrStdout(), useColor(cmd, os.Stdout))
	for _, res := range results {
		reporter.Result(res)
	}
	if reporter.Summary(results) > 0 {
		os.Exit(1)
	}
	return nil
}

func buildConfig(cmd *cobra.Command) (check.Config, error) {
	var cfg check.Config

	man, found, err := loadManifest(".")
	if err != nil {
		return cfg, err
	}
	if found {
		cfg.Program = check.CommandTemplate{
			Binary:     man.Config.Program.Binary,
			Args:       man.Config.Program.Args,
			OutDirFlag: man.Config.Program.OutDirFlag,
		}
		cfg.OutDir = man.Config.Program.OutDir
		cfg.Root = man.Root
		cfg.Target = man.Config.Platform.Target
		cfg.Host = man.Config.Platform.Host
		cfg.BlessCommand = man.Config.Output.BlessCommand
		if man.Config.Output.Conflicts != "" {
			if cfg.Output, err = check.ParseConflictHandling(man.Config.Output.Conflicts); err != nil {
				return cfg, err
			}
		}
	}

	if program, _ := cmd.Flags().GetString("program"); program != "" {
		cfg.Program.Binary = program
	}
	if outDir, _ := cmd.Flags().GetString("out-dir"); outDir != "" {
		cfg.OutDir = outDir
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Root = root
	}
	if target, _ := cmd.Flags().GetString("target"); target != "" {
		cfg.Target = target
	}
	if cfg.Root == "" {
		if cfg.Root, err = os.Getwd(); err != nil {
			return cfg, err
		}
	}
	if cfg.Program.Binary == "" {
		return cfg, fmt.Errorf("no compiler configured: set program.binary in uitest.toml or pass --program")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = filepath.Join(os.TempDir(), "uitest-out")
	}

	if bless, _ := cmd.Flags().GetBool("bless"); bless {
		cfg.Output = check.ConflictBless
	}
	if ignore, _ := cmd.Flags().GetBool("ignore-output"); ignore {
		cfg.Output = check.ConflictIgnore
	}

	modeName, _ := cmd.Flags().GetString("mode")
	exitCode, _ := cmd.Flags().GetInt("exit-code")
	if cfg.DefaultMode, err = parseMode(modeName, exitCode); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseMode(name string, exitCode int) (check.Mode, error) {
	switch name {
	case "pass":
		return check.Mode{Kind: check.ModePass}, nil
	case "panic":
		return check.Mode{Kind: check.ModePanic}, nil
	case "fail":
		return check.Mode{Kind: check.ModeFail, ExitCode: exitCode}, nil
	case "yolo":
		return check.Mode{Kind: check.ModeYolo}, nil
	default:
		return check.Mode{}, fmt.Errorf("invalid mode: %q (expected: pass|panic|fail|yolo)", name)
	}
}
