package check

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Command is one pending compiler invocation. Unlike exec.Cmd it can be
// rendered, copied and re-run, which the custom-flag post actions rely on.
type Command struct {
	Binary string
	Args   []string
	// Env holds extra variables appended to the inherited environment.
	// Later duplicates overwrite earlier ones.
	Env []EnvVar
	// Stdin is piped to the process when non-nil.
	Stdin []byte
}

// Clone returns an independent copy of the command.
func (c *Command) Clone() *Command {
	clone := &Command{Binary: c.Binary, Stdin: c.Stdin}
	clone.Args = append([]string(nil), c.Args...)
	clone.Env = append([]EnvVar(nil), c.Env...)
	return clone
}

// String renders the command for error reports, quoting arguments that
// contain whitespace.
func (c *Command) String() string {
	var b strings.Builder
	for _, env := range c.Env {
		b.WriteString(env.Key)
		b.WriteByte('=')
		b.WriteString(maybeQuote(env.Value))
		b.WriteByte(' ')
	}
	b.WriteString(maybeQuote(c.Binary))
	for _, arg := range c.Args {
		b.WriteByte(' ')
		b.WriteString(maybeQuote(arg))
	}
	return b.String()
}

func maybeQuote(s string) string {
	if strings.ContainsAny(s, " \t\"'") {
		return strconv.Quote(s)
	}
	return s
}

// Output is the captured result of one process invocation.
type Output struct {
	Status int
	Stdout []byte
	Stderr []byte
}

// Runner spawns the compiler process and captures its output. Process
// management (timeouts, cancellation) belongs to implementations; a
// cancelled run must surface as an ordinary error.
type Runner interface {
	Run(cmd *Command) (Output, error)
}

// ExecRunner is the default Runner, backed by os/exec. A non-zero exit is
// not an error: the status travels in Output for the mode check.
type ExecRunner struct{}

func (ExecRunner) Run(cmd *Command) (Output, error) {
	proc := exec.Command(cmd.Binary, cmd.Args...)
	if len(cmd.Env) > 0 {
		env := os.Environ()
		for _, kv := range cmd.Env {
			env = append(env, kv.Key+"="+kv.Value)
		}
		proc.Env = env
	}
	if cmd.Stdin != nil {
		proc.Stdin = bytes.NewReader(cmd.Stdin)
	}
	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	err := proc.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = nil
	}
	if err != nil {
		return Output{}, err
	}
	return Output{
		Status: proc.ProcessState.ExitCode(),
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}, nil
}
