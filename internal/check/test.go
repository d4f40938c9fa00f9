package check

import (
	"fmt"
	"path/filepath"
	"strings"

	"uitest/internal/build"
	"uitest/internal/diag"
	"uitest/internal/source"
)

// TestConfig carries all information needed to run and verify one
// (file, revision) pair. It owns a private copy of the global Config so the
// per-test out-dir rewrite never leaks into other tests.
type TestConfig struct {
	Config Config

	// Revision is the active revision name, "" when the file has none.
	Revision string

	// Comments is the parsed annotation set of the file.
	Comments *Comments

	// Path is the file under test.
	Path string

	// AuxDir is where auxiliary dependency files are looked up.
	AuxDir string

	outDirPatched bool
}

// revisioned returns the directive blocks applicable to this test's
// revision, in source order.
func (t *TestConfig) revisioned() []*Revisioned {
	return t.Comments.ForRevision(t.Revision)
}

// patchOutDir extends the artifact directory with the tested file's parent
// directory relative to the configured root, so aux artifacts from
// same-named files in different directories never collide. Runs exactly
// once, before the first aux build or invocation.
func (t *TestConfig) patchOutDir() {
	if t.outDirPatched {
		return
	}
	t.outDirPatched = true
	relative := source.StripPathPrefix(filepath.Dir(t.Path), t.Config.Root)
	t.Config.OutDir = filepath.Join(append([]string{t.Config.OutDir}, relative...)...)
}

// Extension builds a baseline file extension that includes the revision when
// one is active: "stderr" vs "rev1.stderr".
func (t *TestConfig) Extension(kind string) string {
	if t.Revision == "" {
		return kind
	}
	return t.Revision + "." + kind
}

// Mode resolves the test mode from the annotation set, falling back to the
// configured default.
func (t *TestConfig) Mode() (source.Spanned[Mode], *Errored) {
	mode, errd := findOneForRevision(t.Comments, t.Revision, "mode", func(r *Revisioned) *source.Spanned[Mode] {
		return r.Mode
	})
	if errd != nil {
		return source.Spanned[Mode]{}, errd
	}
	if mode == nil {
		return source.NewSpanned(t.Config.DefaultMode, source.Span{}), nil
	}
	return *mode, nil
}

// OutputPath is the baseline file for the given output kind, honoring
// per-pointer-width naming when any applicable block requests it.
func (t *TestConfig) OutputPath(kind string) string {
	ext := t.Extension(kind)
	for _, rev := range t.revisioned() {
		if rev.StderrPerBitwidth {
			return withExtension(t.Path, fmt.Sprintf("%dbit.%s", t.Config.PointerWidth(), ext))
		}
	}
	return withExtension(t.Path, ext)
}

// Normalize applies every applicable substitution rule for the stream kind,
// in directive order. "fixed" output is never normalized.
func (t *TestConfig) Normalize(text []byte, kind string) []byte {
	for _, rev := range t.revisioned() {
		var rules []NormalizeRule
		switch kind {
		case "fixed":
		case "stderr":
			rules = rev.NormalizeStderr
		case "stdout":
			rules = rev.NormalizeStdout
		default:
			panic("unknown output kind " + kind)
		}
		for _, rule := range rules {
			text = rule.Apply(text)
		}
	}
	return text
}

// BuildCommand assembles the compiler invocation for this test.
//
// Argument order: base program, aux build args, tested file, --cfg for the
// revision, compile flags in directive order, custom-flag mutations, then
// --target only when target and host differ. Env vars are appended last,
// later duplicates overwriting earlier ones.
func (t *TestConfig) BuildCommand(mgr *build.Manager) (*Command, *Errored) {
	cmd := t.Config.Program.Build(t.Config.OutDir)

	extraArgs, errd := t.buildAuxFiles(mgr)
	if errd != nil {
		return nil, errd
	}
	cmd.Args = append(cmd.Args, extraArgs...)
	cmd.Args = append(cmd.Args, t.Path)
	if t.Revision != "" {
		cmd.Args = append(cmd.Args, "--cfg="+t.Revision)
	}
	for _, rev := range t.revisioned() {
		cmd.Args = append(cmd.Args, rev.CompileFlags...)
	}

	t.applyCustom(cmd)

	// A --target matching the host would only force target-specific
	// artifact subdirectories.
	if t.Config.Target != "" && t.Config.Target != t.Config.Host {
		cmd.Args = append(cmd.Args, "--target", t.Config.Target)
	}

	for _, rev := range t.revisioned() {
		cmd.Env = append(cmd.Env, rev.EnvVars...)
	}
	return cmd, nil
}

func (t *TestConfig) applyCustom(cmd *Command) {
	for _, rev := range t.revisioned() {
		for _, custom := range rev.Custom {
			custom.Flag.Content.Apply(cmd, t)
		}
	}
}

// DiagnosticCodePrefix resolves the configured code prefix, "" when unset.
func (t *TestConfig) DiagnosticCodePrefix() (string, *Errored) {
	prefix, errd := findOneForRevision(t.Comments, t.Revision, "diagnostic_code_prefix", func(r *Revisioned) *source.Spanned[string] {
		return r.DiagnosticCodePrefix
	})
	if errd != nil {
		return "", errd
	}
	if prefix == nil {
		return "", nil
	}
	return prefix.Content, nil
}

func (t *TestConfig) requireAnnotationsForLevel() (*source.Spanned[diag.Severity], *Errored) {
	return findOneForRevision(t.Comments, t.Revision, "require_annotations_for_level", func(r *Revisioned) *source.Spanned[diag.Severity] {
		return r.RequireAnnotationsForLevel
	})
}

// withExtension swaps the final extension of path for ext.
func withExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
