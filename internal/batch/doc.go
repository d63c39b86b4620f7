// Package batch implements the reentrant batching coordinator that
// defers controlled-state restoration to the boundary of the outermost
// update.
//
// A Coordinator wraps arbitrary work in a batch via RunBatched. Nested
// RunBatched calls from inside a batch execute their work inline; only
// the outermost call owns the exit protocol: reset the batching flag,
// then, if the restore collaborator reports pending work, flush
// interactive updates and trigger restoration. The exit protocol runs on
// every exit path, including error returns and panics, and exactly once
// per outermost call.
//
// The actual batching behavior is a three-operation Strategy injected by
// the host at wiring time; the defaults are pass-throughs so the
// coordinator is usable before wiring. Coordinators are plain service
// values, so independent runtimes (and tests) can each carry their own.
//
// Like the event pools in internal/synth, a Coordinator belongs to the
// single logical thread driving updates; reentrancy, not parallelism, is
// the concurrency model.
package batch
