// Package check implements the per-test verification pipeline: building the
// compiler invocation for one (file, revision) pair, reconciling captured
// output against baseline files, and matching expected-error annotations
// against the structured diagnostics the compiler actually produced.
//
// # Scope
//
//   - Command construction from the accumulated per-revision directives
//     (compile flags, env vars, auxiliary builds, custom flags).
//   - Output normalization and baseline reconciliation under the three
//     conflict policies (error, bless, ignore).
//   - The annotation matcher: pairing Pattern/Code directives against the
//     per-line diagnostic stream, enforcing exhaustiveness and the
//     mode-specific cross checks.
//
// Package check does not parse `//@` comments into directives, does not
// decode compiler output into structured diagnostics (see diag.Extractor),
// does not spawn processes on its own (see Runner) and does not schedule
// tests across files. Those collaborators are injected through Config.
//
// # Error model
//
// Every discrepancy found in one run is accumulated into an ordered Errors
// list; checks never stop at the first mismatch. Only unrecoverable
// conditions (aux canonicalization, process spawn failure, ambiguous
// directives) abort the remaining checks, surfacing as an *Errored that
// still carries the captured output for post-mortem display.
package check
