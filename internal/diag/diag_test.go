package diag

import (
	"testing"
)

func TestSeverityOrder(t *testing.T) {
	order := []Severity{SevHelp, SevNote, SevWarning, SevError}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Errorf("%v >= %v, severity ladder must be strictly increasing", order[i-1], order[i])
		}
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{in: "help", want: SevHelp},
		{in: "NOTE", want: SevNote},
		{in: "warn", want: SevWarning},
		{in: "WARNING", want: SevWarning},
		{in: "error", want: SevError},
		{in: "fatal", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeverity(%q) error = %v, wantErr=%v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDiagnosticsAdd(t *testing.T) {
	var d Diagnostics
	d.Add(Message{Severity: SevError, Text: "on line five", Line: 5})
	d.Add(Message{Severity: SevNote, Text: "also line five", Line: 5})
	d.Add(Message{Severity: SevWarning, Text: "no line"})
	d.Add(Message{Severity: SevHelp, Text: "negative line", Line: -1})

	if len(d.Messages) != 6 {
		t.Fatalf("Messages table has %d rows, want 6 (index 5 plus sentinel 0)", len(d.Messages))
	}
	if len(d.Messages[0]) != 0 {
		t.Errorf("Messages[0] = %v, index 0 is a sentinel and must stay empty", d.Messages[0])
	}
	if len(d.Messages[5]) != 2 {
		t.Errorf("Messages[5] has %d entries, want 2", len(d.Messages[5]))
	}
	if len(d.Unattributed) != 2 {
		t.Fatalf("Unattributed has %d entries, want 2", len(d.Unattributed))
	}
	for _, msg := range d.Unattributed {
		if msg.Line != 0 {
			t.Errorf("unattributed message kept Line = %d, want 0", msg.Line)
		}
	}
}

func TestMessageString(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "with code",
			msg:  Message{Severity: SevError, Code: "E0412", Text: "cannot find type"},
			want: "ERROR[E0412]: cannot find type",
		},
		{
			name: "without code",
			msg:  Message{Severity: SevWarning, Text: "unused variable"},
			want: "WARNING: unused variable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderedOnly(t *testing.T) {
	stderr := []byte("error: something went wrong\n")
	d := RenderedOnly{}.Extract("demo.sg", stderr)
	if string(d.Rendered) != string(stderr) {
		t.Errorf("Rendered = %q, want the raw stderr", d.Rendered)
	}
	if len(d.Messages) != 0 || len(d.Unattributed) != 0 {
		t.Errorf("RenderedOnly produced structured messages: %v / %v", d.Messages, d.Unattributed)
	}
}
