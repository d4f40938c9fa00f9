package diag

import "fmt"

// Severity defines the importance of a diagnostic.
// The order is total: SevError is the highest rung, so comparing two
// severities with >= answers "is this at least as important".
type Severity uint8

const (
	// SevHelp is for help suggestions attached to other diagnostics.
	SevHelp Severity = iota
	// SevNote is for informational notes.
	SevNote
	// SevWarning is for warning diagnostics.
	SevWarning
	// SevError is for hard errors.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHelp:
		return "HELP"
	case SevNote:
		return "NOTE"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity converts a string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "help", "HELP":
		return SevHelp, nil
	case "note", "NOTE":
		return SevNote, nil
	case "warning", "WARNING", "warn", "WARN":
		return SevWarning, nil
	case "error", "ERROR":
		return SevError, nil
	default:
		return SevError, fmt.Errorf("invalid severity: %q (expected: help|note|warning|error)", s)
	}
}
