package diag

// Diagnostics is the decoded output of one compiler invocation, rebuilt fresh
// per test run. The annotation checks consume it destructively, so every test
// must own its own copy.
type Diagnostics struct {
	// Rendered is the human-readable stderr with any structured records
	// stripped out; it is what gets compared against baseline files.
	Rendered []byte

	// Messages buckets line-attributed diagnostics by 1-based line number.
	// Index 0 is a sentinel and is never populated.
	Messages [][]Message

	// Unattributed collects diagnostics from other files or without a usable
	// line number.
	Unattributed []Message
}

// Add routes a message into the right bucket, growing the per-line table as
// needed. Messages with Line == 0 land in Unattributed.
func (d *Diagnostics) Add(msg Message) {
	if msg.Line <= 0 {
		msg.Line = 0
		d.Unattributed = append(d.Unattributed, msg)
		return
	}
	for len(d.Messages) <= msg.Line {
		d.Messages = append(d.Messages, nil)
	}
	d.Messages[msg.Line] = append(d.Messages[msg.Line], msg)
}

// Extractor decodes raw compiler stderr into structured diagnostics.
// Implementations are compiler-specific (typically a JSON diagnostics
// decoder) and live outside this module.
type Extractor interface {
	Extract(path string, stderr []byte) Diagnostics
}

// RenderedOnly is the fallback Extractor: it treats the whole stderr as
// rendered output and produces no structured messages. Baseline comparison
// still works; annotation matching sees an empty stream.
type RenderedOnly struct{}

func (RenderedOnly) Extract(_ string, stderr []byte) Diagnostics {
	return Diagnostics{Rendered: stderr}
}
