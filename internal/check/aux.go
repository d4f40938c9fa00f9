package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"uitest/internal/build"
	"uitest/internal/source"
)

// AuxCompiler builds one auxiliary source file and reports the extra
// command-line arguments required to use the artifact as a dependency.
// Implementations invoke the compiler; this package only resolves paths and
// funnels requests through the memoizing build manager.
type AuxCompiler interface {
	CompileAux(path string, outDir string) ([]string, *Errored)
}

// buildAuxFiles builds every aux dependency of the applicable blocks, in
// directive order, and collects their extra arguments.
func (t *TestConfig) buildAuxFiles(mgr *build.Manager) ([]string, *Errored) {
	var extraArgs []string
	for _, rev := range t.revisioned() {
		for _, aux := range rev.AuxBuilds {
			args, errd := t.buildAuxFile(aux, mgr)
			if errd != nil {
				return nil, errd
			}
			extraArgs = append(extraArgs, args...)
		}
	}
	return extraArgs, nil
}

func (t *TestConfig) buildAuxFile(aux source.Spanned[string], mgr *build.Manager) ([]string, *Errored) {
	name := filepath.FromSlash(aux.Content)
	var auxFile string
	if strings.HasPrefix(name, "..") {
		// Leading parent traversal resolves against the aux directory's
		// parent, not the aux directory itself.
		auxFile = filepath.Join(filepath.Dir(t.AuxDir), name)
	} else {
		auxFile = filepath.Join(t.AuxDir, name)
	}

	canonical, err := canonicalize(auxFile)
	if err != nil {
		return nil, &Errored{
			Command: fmt.Sprintf("canonicalizing path `%s`", auxFile),
			Stderr:  []byte(err.Error()),
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, &Errored{
			Command: "getting current directory",
			Stderr:  []byte(err.Error()),
		}
	}
	key := filepath.Join(source.StripPathPrefix(canonical, cwd)...)

	args, err := mgr.Build(&auxBuild{
		key:      key,
		path:     canonical,
		outDir:   t.Config.OutDir,
		compiler: t.Config.AuxCompiler,
	})
	if err == nil {
		return args, nil
	}

	// Attribute the failure to the directive that requested the build,
	// keeping the nested build's captured output intact.
	var nested *Errored
	if !errors.As(err, &nested) {
		nested = &Errored{
			Command: "aux build `" + key + "`",
			Errors:  Errors{&Bug{Msg: err.Error()}},
		}
	}
	return nil, &Errored{
		Command: nested.Command,
		Errors: Errors{&Aux{
			Path:   auxFile,
			Line:   aux.Line(),
			Errors: nested.Errors,
		}},
		Stderr: nested.Stderr,
		Stdout: nested.Stdout,
	}
}

// auxBuild adapts one aux file reference to the build manager's Builder.
type auxBuild struct {
	key      string
	path     string
	outDir   string
	compiler AuxCompiler
}

func (b *auxBuild) Key() string {
	return b.key
}

func (b *auxBuild) Digest() (build.Digest, bool) {
	digest, err := build.FileDigest(b.path)
	if err != nil {
		return build.Digest{}, false
	}
	return digest, true
}

func (b *auxBuild) Build(*build.Manager) ([]string, error) {
	if b.compiler == nil {
		return nil, &Errored{
			Command: "aux build `" + b.key + "`",
			Errors:  Errors{&Bug{Msg: "no aux compiler configured"}},
		}
	}
	args, errd := b.compiler.CompileAux(b.path, b.outDir)
	if errd != nil {
		return nil, errd
	}
	return args, nil
}

// canonicalize resolves the path to an absolute, symlink-free form. Unlike
// filepath.Abs it fails when the file does not exist, which is the error
// authors want for a typoed aux reference.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
