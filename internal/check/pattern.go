package check

import (
	"regexp"
	"strings"
)

// Pattern is an expected-error pattern from a directive: either a literal
// substring or a regular expression.
type Pattern struct {
	// Text is the substring to search for when Regex is nil, otherwise the
	// original expression source kept for display.
	Text  string
	Regex *regexp.Regexp
}

// SubString builds a literal substring pattern.
func SubString(text string) Pattern {
	return Pattern{Text: text}
}

// MatchRegex builds a regular-expression pattern.
func MatchRegex(re *regexp.Regexp) Pattern {
	return Pattern{Text: re.String(), Regex: re}
}

// Matches reports whether the pattern is found in the message text.
func (p Pattern) Matches(text string) bool {
	if p.Regex != nil {
		return p.Regex.MatchString(text)
	}
	return strings.Contains(text, p.Text)
}

func (p Pattern) String() string {
	if p.Regex != nil {
		return "/" + p.Text + "/"
	}
	return p.Text
}

// NormalizeRule is one text substitution applied to captured output before
// baseline comparison.
type NormalizeRule struct {
	From *regexp.Regexp
	To   []byte
}

// Apply replaces every occurrence of From with To.
func (r NormalizeRule) Apply(text []byte) []byte {
	return r.From.ReplaceAll(text, r.To)
}
