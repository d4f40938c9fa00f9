package diag

import "fmt"

// Message is one structured diagnostic emitted by the compiler under test.
type Message struct {
	Severity Severity
	// Code is the compiler's diagnostic code, "" when none was attached.
	Code string
	// Text is the free-form message content.
	Text string
	// Line is the 1-based line in the tested file, 0 when the diagnostic
	// could not be attributed to a line there.
	Line int
}

func (m Message) String() string {
	if m.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", m.Severity, m.Code, m.Text)
	}
	return fmt.Sprintf("%s: %s", m.Severity, m.Text)
}
