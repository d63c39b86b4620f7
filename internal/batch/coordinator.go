package batch

import (
	"sync/atomic"
)

// Restorer is the controlled-state collaborator queried from the
// outermost batch exit. Implementations report whether any controlled
// component deferred a state write during the batch and perform the
// deferred writes on demand.
type Restorer interface {
	// NeedsRestore reports whether restoration work is pending.
	NeedsRestore() bool

	// RestoreIfNeeded performs pending restoration work, if any. It may
	// itself issue further batched updates; it always observes the
	// coordinator outside a batch.
	RestoreIfNeeded()
}

// Coordinator owns the process's batching state: a single reentrancy
// flag, the injected Strategy, and the restore collaborator. The zero
// strategy is pass-through; Configure installs the host's wiring.
type Coordinator struct {
	batching bool
	strategy Strategy
	restorer Restorer

	// Stats
	batches  atomic.Uint64
	nested   atomic.Uint64
	restores atomic.Uint64
}

// CoordinatorOption configures a Coordinator at creation time.
type CoordinatorOption func(*Coordinator)

// WithStrategy installs a strategy at creation instead of a later
// Configure call.
func WithStrategy(s Strategy) CoordinatorOption {
	return func(c *Coordinator) {
		c.strategy = s
	}
}

// WithRestorer installs the controlled-state collaborator.
func WithRestorer(r Restorer) CoordinatorOption {
	return func(c *Coordinator) {
		c.restorer = r
	}
}

// New creates a coordinator with pass-through defaults.
func New(opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{strategy: Passthrough()}
	for _, opt := range opts {
		opt(c)
	}
	if c.strategy == nil {
		c.strategy = Passthrough()
	}
	return c
}

// Configure replaces the injected strategy. All three operations swap
// together. Intended to be called once during host wiring, never from
// inside an in-flight batch.
func (c *Coordinator) Configure(s Strategy) {
	if s == nil {
		s = Passthrough()
	}
	c.strategy = s
}

// SetRestorer replaces the controlled-state collaborator.
func (c *Coordinator) SetRestorer(r Restorer) {
	c.restorer = r
}

// IsBatching reports whether an outermost batch is currently executing.
func (c *Coordinator) IsBatching() bool {
	return c.batching
}

// RunBatched runs fn under a batch and returns its result unchanged.
//
// A call made while a batch is already executing runs fn inline: no
// state transition and no restoration check, because the outermost call
// owns the exit protocol. The outermost call runs fn through the
// injected strategy and guarantees, on every exit path including panics,
// that the batching flag resets first and only then is the restore
// collaborator queried. That ordering lets restoration itself issue
// further batched updates.
func (c *Coordinator) RunBatched(fn Func, bookkeeping any) (any, error) {
	if c.batching {
		c.nested.Add(1)
		return fn(bookkeeping)
	}

	c.batching = true
	c.batches.Add(1)
	defer func() {
		c.batching = false
		if c.restorer != nil && c.restorer.NeedsRestore() {
			c.restores.Add(1)
			c.strategy.FlushInteractive()
			c.restorer.RestoreIfNeeded()
		}
	}()

	return c.strategy.Batched(fn, bookkeeping)
}

// RunInteractive delegates to the injected strategy's interactive path.
// It carries no reentrancy or restoration logic of its own.
func (c *Coordinator) RunInteractive(fn InteractiveFunc, a, b any) (any, error) {
	return c.strategy.Interactive(fn, a, b)
}

// FlushInteractive delegates to the injected strategy.
func (c *Coordinator) FlushInteractive() {
	c.strategy.FlushInteractive()
}

// Stats returns a snapshot of the coordinator's counters.
func (c *Coordinator) Stats() CoordinatorStats {
	return CoordinatorStats{
		Batches:  c.batches.Load(),
		Nested:   c.nested.Load(),
		Restores: c.restores.Load(),
	}
}

// CoordinatorStats contains counters for one coordinator.
type CoordinatorStats struct {
	// Batches is the number of outermost RunBatched calls.
	Batches uint64

	// Nested is the number of RunBatched calls made from inside a batch.
	Nested uint64

	// Restores is the number of outermost exits that found restoration
	// work pending.
	Restores uint64
}
