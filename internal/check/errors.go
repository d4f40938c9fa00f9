package check

import (
	"fmt"
	"strings"

	"uitest/internal/diag"
	"uitest/internal/source"
)

// Error is one discrepancy found while checking a test. The set of
// implementations is closed; every kind carries enough context to point the
// author at the offending directive or output.
type Error interface {
	error
	checkError()
}

// Errors accumulates every discrepancy of one run in the order found.
type Errors []Error

func (e *Errors) add(err Error) {
	*e = append(*e, err)
}

// OutputDiffers reports a baseline mismatch for one output stream.
type OutputDiffers struct {
	// Path is the baseline file compared against.
	Path     string
	Actual   []byte
	Expected []byte
	// BlessCommand tells the author how to re-record the baseline.
	BlessCommand string
}

func (e *OutputDiffers) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "output differs from expected %s", e.Path)
	if e.BlessCommand != "" {
		fmt.Fprintf(&b, "\nrun `%s` to update the baseline", e.BlessCommand)
	}
	return b.String()
}

// PatternNotFound reports an expected-error pattern that matched nothing.
type PatternNotFound struct {
	Pattern source.Spanned[Pattern]
	// ExpectedLine is 0 for patterns without a line anchor
	// (error-in-other-file directives).
	ExpectedLine int
}

func (e *PatternNotFound) Error() string {
	if e.ExpectedLine == 0 {
		return fmt.Sprintf("pattern %q not found", e.Pattern.Content.String())
	}
	return fmt.Sprintf("pattern %q not found on line %d", e.Pattern.Content.String(), e.ExpectedLine)
}

// CodeNotFound reports an expected diagnostic code that matched nothing.
// Code is rendered with the configured prefix re-attached.
type CodeNotFound struct {
	Code         source.Spanned[string]
	ExpectedLine int
}

func (e *CodeNotFound) Error() string {
	if e.ExpectedLine == 0 {
		return fmt.Sprintf("diagnostic code %s not found", e.Code.Content)
	}
	return fmt.Sprintf("diagnostic code %s not found on line %d", e.Code.Content, e.ExpectedLine)
}

// ErrorsWithoutPattern reports diagnostics at or above the required severity
// that no directive consumed, grouped by source location.
type ErrorsWithoutPattern struct {
	// Path is nil for the unattributed (foreign file or line-less) group.
	Path *source.Spanned[string]
	Msgs []diag.Message
}

func (e *ErrorsWithoutPattern) Error() string {
	var b strings.Builder
	if e.Path != nil {
		fmt.Fprintf(&b, "diagnostics at %s without a matching annotation:", e.Path.Span)
	} else {
		b.WriteString("diagnostics outside the tested file without a matching annotation:")
	}
	for _, msg := range e.Msgs {
		b.WriteString("\n  ")
		b.WriteString(msg.String())
	}
	return b.String()
}

// PatternFoundInPassTest reports an error annotation in a test whose mode
// forbids diagnostics.
type PatternFoundInPassTest struct {
	Mode       source.Span
	Annotation source.Span
}

func (e *PatternFoundInPassTest) Error() string {
	return fmt.Sprintf("error annotation at %s in a test that must not produce errors (mode set at %s)",
		e.Annotation, e.Mode)
}

// NoPatternsFound reports a fail-mode test that demands annotations but has
// none.
type NoPatternsFound struct{}

func (e *NoPatternsFound) Error() string {
	return "expected error patterns, but found none"
}

// ExitStatus reports a process exit code the mode does not accept.
type ExitStatus struct {
	Mode     string
	Got      int
	Expected int
	Span     source.Span
}

func (e *ExitStatus) Error() string {
	return fmt.Sprintf("%s test got exit status %d, expected %d", e.Mode, e.Got, e.Expected)
}

// InvalidComment reports an annotation set the pipeline cannot act on, such
// as a single-valued directive appearing twice.
type InvalidComment struct {
	Msg  string
	Span source.Span
}

func (e *InvalidComment) Error() string {
	return fmt.Sprintf("invalid comment at %s: %s", e.Span, e.Msg)
}

// Aux wraps the errors of a failed auxiliary build with the reference that
// requested it.
type Aux struct {
	Path string
	// Line is the line of the aux-build directive in the owning test.
	Line   int
	Errors Errors
}

func (e *Aux) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "auxiliary build of %s (requested on line %d) failed", e.Path, e.Line)
	for _, err := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Bug reports an internal failure that is not the test's fault, such as an
// unwritable baseline file.
type Bug struct {
	Msg string
}

func (e *Bug) Error() string {
	return "internal harness error: " + e.Msg
}

func (*OutputDiffers) checkError()          {}
func (*PatternNotFound) checkError()        {}
func (*CodeNotFound) checkError()           {}
func (*ErrorsWithoutPattern) checkError()   {}
func (*PatternFoundInPassTest) checkError() {}
func (*NoPatternsFound) checkError()        {}
func (*ExitStatus) checkError()             {}
func (*InvalidComment) checkError()         {}
func (*Aux) checkError()                    {}
func (*Bug) checkError()                    {}

// Errored is the failure outcome of one test: the command that ran, every
// accumulated error, and the captured output for post-mortem display.
type Errored struct {
	Command string
	Errors  Errors
	Stderr  []byte
	Stdout  []byte
}

func (e *Errored) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command `%s` failed with %d error(s)", e.Command, len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n")
		b.WriteString(err.Error())
	}
	return b.String()
}
