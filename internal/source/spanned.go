package source

// Spanned pairs a parsed value with the span it came from, so that checks
// running long after parsing can still point at the directive that caused
// them.
type Spanned[T any] struct {
	Content T
	Span    Span
}

// NewSpanned wraps content with its span.
func NewSpanned[T any](content T, span Span) Spanned[T] {
	return Spanned[T]{Content: content, Span: span}
}

// Line returns the first line of the span, 0 when unknown.
func (s Spanned[T]) Line() int {
	return s.Span.LineStart
}
