package check

import (
	"fmt"

	"uitest/internal/source"
)

// ModeKind selects how the process exit status and annotations are judged.
type ModeKind uint8

const (
	// ModePass expects a clean exit and no diagnostics.
	ModePass ModeKind = iota
	// ModePanic expects the process to abort.
	ModePanic
	// ModeFail expects a failing exit with matching annotations.
	ModeFail
	// ModeYolo disables exit-status and exhaustiveness enforcement.
	ModeYolo
)

// panicExitCode is the status a rust-style runtime abort produces.
const panicExitCode = 101

// Mode is the resolved test mode for one (file, revision) pair, computed
// once from the annotation set and immutable afterwards.
type Mode struct {
	Kind ModeKind

	// RequirePatterns demands at least one error-match directive in ModeFail.
	RequirePatterns bool

	// ExitCode is the expected process status in ModeFail.
	ExitCode int
}

func (m Mode) String() string {
	switch m.Kind {
	case ModePass:
		return "pass"
	case ModePanic:
		return "panic"
	case ModeFail:
		return fmt.Sprintf("fail(exit=%d)", m.ExitCode)
	case ModeYolo:
		return "yolo"
	}
	return "unknown"
}

// CheckExit validates the process exit status against the mode. A nil return
// means the status is acceptable.
func (m Mode) CheckExit(status int, span source.Span) Error {
	expected := 0
	switch m.Kind {
	case ModePass:
		expected = 0
	case ModePanic:
		expected = panicExitCode
	case ModeFail:
		expected = m.ExitCode
	case ModeYolo:
		return nil
	}
	if status != expected {
		return &ExitStatus{Mode: m.String(), Got: status, Expected: expected, Span: span}
	}
	return nil
}
