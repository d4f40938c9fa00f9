package source

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestSpanString(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want string
	}{
		{name: "zero", span: Span{}, want: "<unknown>"},
		{name: "single line", span: LineSpan("tests/ui/demo.sg", 3), want: "tests/ui/demo.sg:3"},
		{name: "range", span: Span{File: "demo.sg", LineStart: 3, LineEnd: 7}, want: "demo.sg:3-7"},
		{name: "file only", span: Span{File: "demo.sg"}, want: "demo.sg"},
		{name: "dot prefix trimmed", span: LineSpan("./demo.sg", 1), want: "demo.sg:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Span
		want  Span
	}{
		{
			name: "zero receiver takes other",
			a:    Span{},
			b:    LineSpan("a.sg", 4),
			want: LineSpan("a.sg", 4),
		},
		{
			name: "widens both ends",
			a:    Span{File: "a.sg", LineStart: 5, LineEnd: 6},
			b:    Span{File: "a.sg", LineStart: 2, LineEnd: 9},
			want: Span{File: "a.sg", LineStart: 2, LineEnd: 9},
		},
		{
			name: "contained span is a no-op",
			a:    Span{File: "a.sg", LineStart: 2, LineEnd: 9},
			b:    Span{File: "a.sg", LineStart: 5, LineEnd: 6},
			want: Span{File: "a.sg", LineStart: 2, LineEnd: 9},
		},
		{
			name: "different file keeps receiver",
			a:    LineSpan("a.sg", 2),
			b:    LineSpan("b.sg", 9),
			want: LineSpan("a.sg", 2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStripPathPrefix(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		name   string
		path   string
		prefix string
		want   []string
	}{
		{
			name:   "under prefix",
			path:   filepath.Join(sep+"work", "tests", "ui", "demo.sg"),
			prefix: filepath.Join(sep+"work", "tests"),
			want:   []string{"ui", "demo.sg"},
		},
		{
			name:   "equal to prefix",
			path:   filepath.Join(sep+"work", "tests"),
			prefix: filepath.Join(sep+"work", "tests"),
			want:   nil,
		},
		{
			name:   "outside prefix keeps components",
			path:   filepath.Join(sep+"other", "demo.sg"),
			prefix: filepath.Join(sep+"work", "tests"),
			want:   []string{"other", "demo.sg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripPathPrefix(tt.path, tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StripPathPrefix(%q, %q) = %v, want %v", tt.path, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestSpannedLine(t *testing.T) {
	sp := NewSpanned("payload", LineSpan("demo.sg", 12))
	if sp.Line() != 12 {
		t.Errorf("Line() = %d, want 12", sp.Line())
	}
	if sp.Content != "payload" {
		t.Errorf("Content = %q", sp.Content)
	}
}
