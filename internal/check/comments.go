package check

import (
	"uitest/internal/diag"
	"uitest/internal/source"
)

// EnvVar is one environment variable directive. Order matters: later
// duplicates overwrite earlier ones when the command is assembled.
type EnvVar struct {
	Key   string
	Value string
}

// ErrorMatch is one expected-error directive. Exactly one of Pattern and
// Code is set.
type ErrorMatch struct {
	// Pattern matches a message with the expected text at the expected
	// severity Level.
	Pattern *source.Spanned[Pattern]
	Level   diag.Severity

	// Code matches an error-severity message by diagnostic code.
	Code *source.Spanned[string]

	// Line is the 1-based line the diagnostic is expected on, never zero.
	Line int
}

// Span returns the span of whichever directive kind is set.
func (m *ErrorMatch) Span() source.Span {
	if m.Pattern != nil {
		return m.Pattern.Span
	}
	return m.Code.Span
}

// CustomFlag is a named custom-flag instance scoped to one revision block.
type CustomFlag struct {
	Name string
	Flag source.Spanned[Flag]
}

// Revisioned is one block of directives together with the revision names it
// applies to. An empty Revisions list applies to every revision.
//
// Revisioned sets are produced by an external comment parser before the
// pipeline runs and are immutable afterwards.
type Revisioned struct {
	Revisions []string
	Span      source.Span

	CompileFlags      []string
	EnvVars           []EnvVar
	AuxBuilds         []source.Spanned[string]
	ErrorInOtherFiles []source.Spanned[Pattern]
	ErrorMatches      []ErrorMatch
	NormalizeStderr   []NormalizeRule
	NormalizeStdout   []NormalizeRule

	// DiagnosticCodePrefix is stripped from actual codes before comparing
	// against Code directives. Single-valued across applicable blocks.
	DiagnosticCodePrefix *source.Spanned[string]

	// RequireAnnotationsForLevel overrides the minimum severity that must
	// carry an annotation. Single-valued across applicable blocks.
	RequireAnnotationsForLevel *source.Spanned[diag.Severity]

	// Mode overrides the configured default mode. Single-valued across
	// applicable blocks.
	Mode *source.Spanned[Mode]

	// StderrPerBitwidth switches baseline naming to <width>bit.<ext>.
	StderrPerBitwidth bool

	// Custom holds custom-flag instances in insertion order.
	Custom []CustomFlag
}

func (r *Revisioned) appliesTo(revision string) bool {
	if len(r.Revisions) == 0 {
		return true
	}
	for _, rev := range r.Revisions {
		if rev == revision {
			return true
		}
	}
	return false
}

// Comments is the full annotation set of one test file: every directive
// block in source order.
type Comments struct {
	Blocks []Revisioned
}

// ForRevision returns the blocks that apply to the given revision, in source
// order. The empty revision selects only unconditional blocks.
func (c *Comments) ForRevision(revision string) []*Revisioned {
	var out []*Revisioned
	for i := range c.Blocks {
		if c.Blocks[i].appliesTo(revision) {
			out = append(out, &c.Blocks[i])
		}
	}
	return out
}

// findOneForRevision extracts a single-valued directive across all blocks
// applicable to the revision. Finding it twice is an immediate hard error:
// single-valued directives have no meaningful merge order.
func findOneForRevision[T any](c *Comments, revision, kind string, get func(*Revisioned) *source.Spanned[T]) (*source.Spanned[T], *Errored) {
	var found *source.Spanned[T]
	for _, rev := range c.ForRevision(revision) {
		val := get(rev)
		if val == nil {
			continue
		}
		if found != nil {
			return nil, &Errored{
				Command: "<unknown>",
				Errors: Errors{&InvalidComment{
					Msg:  "multiple " + kind + " found",
					Span: val.Span,
				}},
			}
		}
		found = val
	}
	return found, nil
}
