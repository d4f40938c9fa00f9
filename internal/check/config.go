package check

import (
	"fmt"
	"strconv"
	"strings"

	"uitest/internal/diag"
)

// ConflictHandling decides what to do when actual output and a baseline file
// disagree. Global, set once per run.
type ConflictHandling uint8

const (
	// ConflictError compares against the stored baseline and reports
	// mismatches.
	ConflictError ConflictHandling = iota
	// ConflictBless overwrites baselines with the actual output, deleting
	// the file when the output is empty.
	ConflictBless
	// ConflictIgnore skips baseline checks entirely.
	ConflictIgnore
)

func (c ConflictHandling) String() string {
	switch c {
	case ConflictError:
		return "error"
	case ConflictBless:
		return "bless"
	case ConflictIgnore:
		return "ignore"
	}
	return "unknown"
}

// ParseConflictHandling converts a string to a ConflictHandling.
func ParseConflictHandling(s string) (ConflictHandling, error) {
	switch strings.ToLower(s) {
	case "error":
		return ConflictError, nil
	case "bless":
		return ConflictBless, nil
	case "ignore":
		return ConflictIgnore, nil
	default:
		return ConflictError, fmt.Errorf("invalid conflict handling: %q (expected: error|bless|ignore)", s)
	}
}

// CommandTemplate is the base invocation of the compiler under test.
type CommandTemplate struct {
	Binary string
	Args   []string
	// OutDirFlag names the flag that passes the output directory, e.g.
	// "--out-dir". Empty omits the directory from the command.
	OutDirFlag string
}

// Build renders the template into a fresh command for one invocation.
func (t CommandTemplate) Build(outDir string) *Command {
	cmd := &Command{Binary: t.Binary}
	cmd.Args = append(cmd.Args, t.Args...)
	if t.OutDirFlag != "" && outDir != "" {
		cmd.Args = append(cmd.Args, t.OutDirFlag, outDir)
	}
	return cmd
}

// Config is the global configuration shared by every test of one run.
// External collaborators (process runner, diagnostics decoder, aux compiler)
// are injected here.
type Config struct {
	// Program is the base compiler invocation.
	Program CommandTemplate

	// OutDir receives build artifacts. Each test rewrites its own copy of
	// the config so artifacts from same-named files in different directories
	// never collide.
	OutDir string

	// Root is the directory test paths are made relative to.
	Root string

	// Target and Host are platform triples. A --target flag is emitted only
	// when they differ, avoiding spurious target-specific artifact
	// subdirectories.
	Target string
	Host   string

	// Output selects the baseline conflict policy.
	Output ConflictHandling

	// BlessCommand is the remediation hint attached to OutputDiffers errors.
	BlessCommand string

	// DefaultMode applies when no mode directive is present.
	DefaultMode Mode

	// Extractor decodes compiler stderr into structured diagnostics.
	// Defaults to diag.RenderedOnly.
	Extractor diag.Extractor

	// Runner spawns the compiler process. Defaults to ExecRunner.
	Runner Runner

	// AuxCompiler builds auxiliary dependencies. Required only by tests
	// carrying aux-build directives.
	AuxCompiler AuxCompiler
}

func (c *Config) extractor() diag.Extractor {
	if c.Extractor == nil {
		return diag.RenderedOnly{}
	}
	return c.Extractor
}

func (c *Config) runner() Runner {
	if c.Runner == nil {
		return ExecRunner{}
	}
	return c.Runner
}

// PointerWidth derives the pointer width in bits from the configured target,
// falling back to the host width. Used for per-bitwidth baseline naming.
func (c *Config) PointerWidth() int {
	arch, _, _ := strings.Cut(c.Target, "-")
	switch {
	case arch == "":
		return strconv.IntSize
	case strings.HasSuffix(arch, "64") || arch == "s390x" || arch == "sparcv9":
		return 64
	case arch == "avr" || arch == "msp430":
		return 16
	default:
		return 32
	}
}
