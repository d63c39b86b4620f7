// Package events defines the runtime's concrete synthetic event
// classes.
//
// Classes form an extension chain rooted at a base class carrying the
// fields every event shares (target, type, when). UI input classes add
// decoded keyboard modifiers; the key, mouse, and scroll classes add
// their own fields on top. Each class owns an independent instance pool.
//
// The classes are grouped in a Catalog rather than package globals so
// independent runtimes (and tests) never share pools.
package events
