package synth

// DefaultPoolCapacity bounds each class's free list. Releasing into a
// full pool drops the instance instead of growing the list.
const DefaultPoolCapacity = 10

// pool is a per-class LIFO free list of recycled event instances.
// It is driven from the single logical dispatch thread and therefore
// carries no lock.
type pool struct {
	capacity int
	free     []*Event
}

func newPool(capacity int) *pool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &pool{capacity: capacity}
}

// get pops the most recently released instance, if any.
func (p *pool) get() (*Event, bool) {
	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	ev := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	return ev, true
}

// put returns an instance to the free list. It reports false when the
// pool is at capacity and the instance was dropped.
func (p *pool) put(ev *Event) bool {
	if len(p.free) >= p.capacity {
		return false
	}
	p.free = append(p.free, ev)
	return true
}

func (p *pool) size() int {
	return len(p.free)
}
