// Package harness schedules per-test pipelines across worker goroutines and
// reports their outcomes.
//
// The verification core (internal/check) is synchronous and single-threaded
// per test. All cross-test concurrency lives here, and the only shared
// mutable state crossing the boundary is the memoizing build manager.
package harness

import (
	"context"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"uitest/internal/build"
	"uitest/internal/check"
)

// Test is one scheduled (file, revision) pair. Which files to test and
// which revisions they carry is the caller's decision.
type Test struct {
	Path     string
	Revision string
	Comments *check.Comments
	// AuxDir overrides the default auxiliary directory
	// (<dir of Path>/auxiliary).
	AuxDir string
}

// Result pairs a scheduled test with its outcome. A nil Errored is a pass.
type Result struct {
	Test    Test
	Errored *check.Errored
}

// Ok reports whether the test passed.
func (r Result) Ok() bool {
	return r.Errored == nil
}

// Options tunes the runner.
type Options struct {
	// Jobs bounds concurrent tests; 0 means one per CPU.
	Jobs int

	// Manager is shared across all tests so identical aux builds collapse.
	// A fresh one is created when nil.
	Manager *build.Manager
}

// Run executes every test across a bounded worker pool and returns results
// in input order. Cancelling the context stops scheduling new tests; tests
// already running finish and report normally.
func Run(ctx context.Context, cfg check.Config, tests []Test, opts Options) []Result {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	mgr := opts.Manager
	if mgr == nil {
		mgr = build.NewManager(nil)
	}

	results := make([]Result, len(tests))
	g := new(errgroup.Group)
	g.SetLimit(jobs)
	for i, test := range tests {
		if ctx.Err() != nil {
			results[i] = Result{Test: test, Errored: &check.Errored{
				Command: "<not run>",
				Errors:  check.Errors{&check.Bug{Msg: "run cancelled: " + context.Cause(ctx).Error()}},
			}}
			continue
		}
		g.Go(func() error {
			auxDir := test.AuxDir
			if auxDir == "" {
				auxDir = filepath.Join(filepath.Dir(test.Path), "auxiliary")
			}
			comments := test.Comments
			if comments == nil {
				comments = &check.Comments{}
			}
			tc := &check.TestConfig{
				Config:   cfg,
				Revision: test.Revision,
				Comments: comments,
				Path:     test.Path,
				AuxDir:   auxDir,
			}
			results[i] = Result{Test: test, Errored: tc.Run(mgr)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
