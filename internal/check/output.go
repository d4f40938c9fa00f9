package check

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
)

// CheckTestOutput reconciles both captured streams against their baselines.
// The checks are independent; both record their findings into errs.
func (t *TestConfig) CheckTestOutput(errs *Errors, stdout, stderr []byte) {
	t.CheckOutput(stderr, errs, "stderr")
	t.CheckOutput(stdout, errs, "stdout")
}

// CheckOutput normalizes one output stream and reconciles it with its
// baseline file per the configured conflict policy. The baseline path used
// is returned either way.
func (t *TestConfig) CheckOutput(output []byte, errs *Errors, kind string) string {
	output = t.Normalize(output, kind)
	path := t.OutputPath(kind)
	switch t.Config.Output {
	case ConflictError:
		// A missing baseline means "expected empty output".
		expected, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs.add(&Bug{Msg: "reading baseline " + path + ": " + err.Error()})
			return path
		}
		if !bytes.Equal(output, expected) {
			errs.add(&OutputDiffers{
				Path:         path,
				Actual:       output,
				Expected:     expected,
				BlessCommand: t.Config.BlessCommand,
			})
		}
	case ConflictBless:
		if len(output) == 0 {
			// Do not leave empty baseline files around.
			_ = os.Remove(path)
		} else if err := os.WriteFile(path, output, 0o644); err != nil {
			errs.add(&Bug{Msg: "blessing " + path + ": " + err.Error()})
		}
	case ConflictIgnore:
	}
	return path
}
