package check

import (
	"strings"

	"uitest/internal/diag"
	"uitest/internal/source"
)

// CheckAnnotations matches every expected-error directive against the
// diagnostic stream, records mismatches and leftovers into errs, and applies
// the mode cross checks. The stream is consumed destructively: each matched
// message is removed so it can satisfy at most one directive.
//
// The hard error return is reserved for annotation sets the matcher cannot
// act on (duplicate single-valued directives); mismatches never abort.
func (t *TestConfig) CheckAnnotations(diags *diag.Diagnostics, errs *Errors) *Errored {
	// The span of the last error-match directive seen, regardless of
	// whether it matched. Drives the mode cross checks.
	var seenErrorMatch *source.Span

	// Foreign-file patterns go first so that authors can mix them with
	// in-file annotations even when the messages overlap.
	for _, rev := range t.revisioned() {
		for i := range rev.ErrorInOtherFiles {
			pattern := &rev.ErrorInOtherFiles[i]
			seenErrorMatch = &pattern.Span
			found := -1
			for j := range diags.Unattributed {
				if pattern.Content.Matches(diags.Unattributed[j].Text) {
					found = j
					break
				}
			}
			if found >= 0 {
				diags.Unattributed = append(diags.Unattributed[:found], diags.Unattributed[found+1:]...)
			} else {
				errs.add(&PatternNotFound{Pattern: *pattern})
			}
		}
	}

	prefix, errd := t.DiagnosticCodePrefix()
	if errd != nil {
		return errd
	}

	// Every diagnostic of at least lowestAnnotationLevel must end up
	// annotated. Pattern directives with a lower level pull the bound down,
	// even when the pattern itself never matches.
	lowestAnnotationLevel := diag.SevError
	for _, rev := range t.revisioned() {
		for i := range rev.ErrorMatches {
			match := &rev.ErrorMatches[i]
			span := match.Span()
			seenErrorMatch = &span
			if match.Pattern != nil && match.Level < lowestAnnotationLevel {
				lowestAnnotationLevel = match.Level
			}
			if t.matchOne(diags, match, prefix) {
				continue
			}
			if match.Pattern != nil {
				errs.add(&PatternNotFound{Pattern: *match.Pattern, ExpectedLine: match.Line})
			} else {
				errs.add(&CodeNotFound{
					Code:         source.NewSpanned(prefix+match.Code.Content, match.Code.Span),
					ExpectedLine: match.Line,
				})
			}
		}
	}

	required, errd := t.requireAnnotationsForLevel()
	if errd != nil {
		return errd
	}
	requiredLevel := lowestAnnotationLevel
	if required != nil {
		requiredLevel = required.Content
	}

	mode, errd := t.Mode()
	if errd != nil {
		return errd
	}

	if mode.Content.Kind != ModeYolo {
		if left := filterSeverity(diags.Unattributed, requiredLevel); len(left) > 0 {
			errs.add(&ErrorsWithoutPattern{Msgs: left})
		}
		// Index 0 is the "no line" sentinel and stays empty.
		for line := 1; line < len(diags.Messages); line++ {
			if left := filterSeverity(diags.Messages[line], requiredLevel); len(left) > 0 {
				path := source.NewSpanned(t.Path, source.LineSpan(t.Path, line))
				errs.add(&ErrorsWithoutPattern{Path: &path, Msgs: left})
			}
		}
	}

	switch {
	case (mode.Content.Kind == ModePass || mode.Content.Kind == ModePanic) && seenErrorMatch != nil:
		errs.add(&PatternFoundInPassTest{Mode: mode.Span, Annotation: *seenErrorMatch})
	case mode.Content.Kind == ModeFail && mode.Content.RequirePatterns && seenErrorMatch == nil:
		errs.add(&NoPatternsFound{})
	}
	return nil
}

// matchOne consumes the first message satisfying the directive from its
// line bucket. Reports whether a message was consumed.
func (t *TestConfig) matchOne(diags *diag.Diagnostics, match *ErrorMatch, prefix string) bool {
	if match.Line <= 0 || match.Line >= len(diags.Messages) {
		return false
	}
	bucket := diags.Messages[match.Line]
	for i := range bucket {
		msg := &bucket[i]
		if match.Pattern != nil {
			if msg.Severity != match.Level || !match.Pattern.Content.Matches(msg.Text) {
				continue
			}
		} else {
			// Code directives only ever consume hard errors.
			if msg.Severity != diag.SevError || msg.Code == "" {
				continue
			}
			code, ok := strings.CutPrefix(msg.Code, prefix)
			if !ok || code != match.Code.Content {
				continue
			}
		}
		diags.Messages[match.Line] = append(bucket[:i], bucket[i+1:]...)
		return true
	}
	return false
}

func filterSeverity(msgs []diag.Message, min diag.Severity) []diag.Message {
	var out []diag.Message
	for _, msg := range msgs {
		if msg.Severity >= min {
			out = append(out, msg)
		}
	}
	return out
}
