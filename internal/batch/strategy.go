package batch

// Func is a unit of work run under a batch. It receives the opaque
// bookkeeping value passed to RunBatched.
type Func func(bookkeeping any) (any, error)

// InteractiveFunc is a unit of work run through the interactive path.
type InteractiveFunc func(a, b any) (any, error)

// Strategy is the host-injected batching behavior. The host runtime
// decides what surrounds a batch body and when interactive work flushes;
// the coordinator only decides when each operation fires.
type Strategy interface {
	// Batched runs fn under whatever update grouping the host applies.
	Batched(fn Func, bookkeeping any) (any, error)

	// Interactive runs fn under the host's interactive-update grouping.
	Interactive(fn InteractiveFunc, a, b any) (any, error)

	// FlushInteractive forces any deferred interactive work to complete.
	FlushInteractive()
}

// passthrough is the default strategy: run the work inline, flush
// nothing. It keeps a coordinator usable before the host wires a real
// strategy in.
type passthrough struct{}

func (passthrough) Batched(fn Func, bookkeeping any) (any, error) {
	return fn(bookkeeping)
}

func (passthrough) Interactive(fn InteractiveFunc, a, b any) (any, error) {
	return fn(a, b)
}

func (passthrough) FlushInteractive() {}

// Passthrough returns the default pass-through strategy.
func Passthrough() Strategy {
	return passthrough{}
}

// StrategyFuncs adapts three plain functions to the Strategy interface.
// Nil members fall back to the pass-through behavior.
type StrategyFuncs struct {
	// BatchedFn implements Strategy.Batched.
	BatchedFn func(fn Func, bookkeeping any) (any, error)

	// InteractiveFn implements Strategy.Interactive.
	InteractiveFn func(fn InteractiveFunc, a, b any) (any, error)

	// FlushFn implements Strategy.FlushInteractive.
	FlushFn func()
}

// Batched implements Strategy.
func (s StrategyFuncs) Batched(fn Func, bookkeeping any) (any, error) {
	if s.BatchedFn == nil {
		return fn(bookkeeping)
	}
	return s.BatchedFn(fn, bookkeeping)
}

// Interactive implements Strategy.
func (s StrategyFuncs) Interactive(fn InteractiveFunc, a, b any) (any, error) {
	if s.InteractiveFn == nil {
		return fn(a, b)
	}
	return s.InteractiveFn(fn, a, b)
}

// FlushInteractive implements Strategy.
func (s StrategyFuncs) FlushInteractive() {
	if s.FlushFn != nil {
		s.FlushFn()
	}
}
