package harness

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"fortio.org/safecast"
)

// Reporter prints per-test lines and a final summary. It is not safe for
// concurrent use; the runner hands it results after Run returns.
type Reporter struct {
	out  io.Writer
	ok   *color.Color
	fail *color.Color
	dim  *color.Color
}

// NewReporter builds a reporter writing to out. Colors are disabled when
// useColor is false.
func NewReporter(out io.Writer, useColor bool) *Reporter {
	r := &Reporter{
		out:  out,
		ok:   color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
	}
	if !useColor {
		r.ok.DisableColor()
		r.fail.DisableColor()
		r.dim.DisableColor()
	}
	return r
}

func (r *Reporter) name(res Result) string {
	if res.Test.Revision == "" {
		return res.Test.Path
	}
	return res.Test.Path + " (revision `" + res.Test.Revision + "`)"
}

// Result prints one test outcome. Failures include every accumulated error
// and the captured output for diff-style remediation.
func (r *Reporter) Result(res Result) {
	if res.Ok() {
		fmt.Fprintf(r.out, "%s %s\n", r.ok.Sprint("ok"), r.name(res))
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.fail.Sprint("FAILED"), r.name(res))
	fmt.Fprintf(r.out, "%s %s\n", r.dim.Sprint("command:"), res.Errored.Command)
	for _, err := range res.Errored.Errors {
		fmt.Fprintln(r.out, err.Error())
	}
	if len(res.Errored.Stderr) > 0 {
		fmt.Fprintf(r.out, "%s\n%s\n", r.dim.Sprint("full stderr:"), res.Errored.Stderr)
	}
	if len(res.Errored.Stdout) > 0 {
		fmt.Fprintf(r.out, "%s\n%s\n", r.dim.Sprint("full stdout:"), res.Errored.Stdout)
	}
}

// Summary prints the aggregate line and returns the number of failures.
func (r *Reporter) Summary(results []Result) int {
	failed := 0
	for _, res := range results {
		if !res.Ok() {
			failed++
		}
	}
	passed, err := safecast.Conv[uint](len(results) - failed)
	if err != nil {
		passed = 0
	}
	if failed > 0 {
		fmt.Fprintf(r.out, "\n%s %d passed, %d failed\n", r.fail.Sprint("test result: FAILED."), passed, failed)
	} else {
		fmt.Fprintf(r.out, "\n%s %d passed\n", r.ok.Sprint("test result: ok."), passed)
	}
	return failed
}
