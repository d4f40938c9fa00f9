package source

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Span identifies a line range inside one source file. Lines are 1-based and
// inclusive on both ends. The zero Span means "no location".
type Span struct {
	File      string
	LineStart int
	LineEnd   int
}

// LineSpan builds a single-line span.
func LineSpan(file string, line int) Span {
	return Span{File: file, LineStart: line, LineEnd: line}
}

func (s Span) IsZero() bool {
	return s.File == "" && s.LineStart == 0 && s.LineEnd == 0
}

func (s Span) String() string {
	if s.IsZero() {
		return "<unknown>"
	}
	file := normalizePath(s.File)
	if s.LineStart == 0 {
		return file
	}
	if s.LineEnd > s.LineStart {
		return fmt.Sprintf("%s:%d-%d", file, s.LineStart, s.LineEnd)
	}
	return fmt.Sprintf("%s:%d", file, s.LineStart)
}

// Cover widens the span to include other. Spans from different files are
// incompatible; the receiver wins.
func (s Span) Cover(other Span) Span {
	if s.IsZero() {
		return other
	}
	if s.File != other.File {
		return s
	}
	if other.LineStart != 0 && (s.LineStart == 0 || other.LineStart < s.LineStart) {
		s.LineStart = other.LineStart
	}
	if other.LineEnd > s.LineEnd {
		s.LineEnd = other.LineEnd
	}
	return s
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}
