package check

import (
	"errors"
	"io/fs"
	"os"

	"uitest/internal/build"
)

// Run executes the full pipeline for this (file, revision) pair: build the
// command, invoke it, reconcile output, match annotations, then give every
// custom flag its post-test action. A nil return means the test passed.
func (t *TestConfig) Run(mgr *build.Manager) *Errored {
	t.patchOutDir()

	cmd, errd := t.BuildCommand(mgr)
	if errd != nil {
		return errd
	}

	stdin := withExtension(t.Path, t.Extension("stdin"))
	if data, err := os.ReadFile(stdin); err == nil {
		cmd.Stdin = data
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &Errored{
			Command: cmd.String(),
			Errors:  Errors{&Bug{Msg: "reading stdin file " + stdin + ": " + err.Error()}},
		}
	}

	output, err := t.Config.runner().Run(cmd)
	if err != nil {
		return &Errored{
			Command: cmd.String(),
			Errors:  Errors{&Bug{Msg: "spawning process: " + err.Error()}},
			Stderr:  []byte(err.Error()),
		}
	}

	output, errd = t.checkTestResult(cmd, output)
	if errd != nil {
		return errd
	}

	// Post-test actions run in directive order. A flag may finalize the
	// test (nil command) or hand a replacement command to the next flag.
	for _, rev := range t.revisioned() {
		for _, custom := range rev.Custom {
			next, errd := custom.Flag.Content.PostTestAction(t, cmd, output, mgr)
			if errd != nil {
				return errd
			}
			if next == nil {
				return nil
			}
			cmd = next
		}
	}
	return nil
}

// checkTestResult runs every check over one invocation's output: exit
// status, baseline reconciliation of both streams, annotation matching.
func (t *TestConfig) checkTestResult(cmd *Command, output Output) (Output, *Errored) {
	var errs Errors

	mode, errd := t.Mode()
	if errd != nil {
		return output, errd
	}
	if err := mode.Content.CheckExit(output.Status, mode.Span); err != nil {
		errs.add(err)
	}

	diags := t.Config.extractor().Extract(t.Path, output.Stderr)
	t.CheckTestOutput(&errs, output.Stdout, diags.Rendered)

	if errd := t.CheckAnnotations(&diags, &errs); errd != nil {
		return output, errd
	}

	if len(errs) > 0 {
		return output, &Errored{
			Command: cmd.String(),
			Errors:  errs,
			Stderr:  diags.Rendered,
			Stdout:  output.Stdout,
		}
	}
	return output, nil
}
