// Package synth implements the synthetic-event object model: normalized,
// poolable wrappers around heterogeneous native input events.
//
// # Classes and descriptor tables
//
// An event class is defined by a descriptor table mapping normalized field
// names to rules. A rule is either a function deriving the value from the
// native event, or nil, meaning the same-named native field is copied
// verbatim. The field named "target" is special: it always binds the
// explicit native-event-target argument passed at acquisition.
//
// Classes extend through Extend, which merges the derived table over the
// base table (derived entries shadow base entries) and gives the new class
// its own independent pool. Extension chains to any depth.
//
// # Pooling
//
// Each class keeps a bounded free list of recycled instances. Acquire
// reuses the most recently released instance when one is available and
// re-runs full construction on it, so a pooled instance is observably
// identical to a fresh allocation. Release clears every reference-bearing
// field before the instance re-enters the pool; reading from a released
// instance is a programming error. Call Persist to keep an instance alive
// past its normal release point.
//
// The pool free lists assume the single-threaded cooperative dispatch
// model of the surrounding runtime: one logical thread drives acquisition
// and release, so no locking is applied to them.
package synth
