package check

import "uitest/internal/build"

// Flag is the custom-flag extension point: a named, revision-scoped behavior
// that can mutate the command before the run and act on its result
// afterwards. Implementations are looked up by name in directive order.
type Flag interface {
	// Apply mutates the command before the test is invoked.
	Apply(cmd *Command, test *TestConfig)

	// PostTestAction runs after all checks passed. Returning a nil command
	// finalizes the test as passed immediately; otherwise the returned
	// command (possibly a modified replacement) is handed to the next flag.
	PostTestAction(test *TestConfig, cmd *Command, output Output, mgr *build.Manager) (*Command, *Errored)
}

// ExtraArgs is the simplest Flag: it appends fixed arguments to the command
// and takes no post-test action.
type ExtraArgs struct {
	Args []string
}

func (f ExtraArgs) Apply(cmd *Command, _ *TestConfig) {
	cmd.Args = append(cmd.Args, f.Args...)
}

func (f ExtraArgs) PostTestAction(_ *TestConfig, cmd *Command, _ Output, _ *build.Manager) (*Command, *Errored) {
	return cmd, nil
}

// Rerun re-invokes the command once with extra arguments after the first
// invocation passed all checks, re-checking the second run's result. It
// covers flags of the "run the test again with X" family.
type Rerun struct {
	Args []string
}

func (f Rerun) Apply(_ *Command, _ *TestConfig) {}

func (f Rerun) PostTestAction(test *TestConfig, cmd *Command, _ Output, _ *build.Manager) (*Command, *Errored) {
	next := cmd.Clone()
	next.Args = append(next.Args, f.Args...)
	output, err := test.Config.runner().Run(next)
	if err != nil {
		return nil, &Errored{
			Command: next.String(),
			Errors:  Errors{&Bug{Msg: err.Error()}},
			Stderr:  []byte(err.Error()),
		}
	}
	if _, errd := test.checkTestResult(next, output); errd != nil {
		return nil, errd
	}
	return next, nil
}
