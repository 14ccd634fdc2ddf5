package sim

// Pool is a LIFO free-list of reusable instances. Instances are created once
// (pre-warm or on exhaustion) and recycled on death; nothing is freed before
// teardown. A membership set guards against double-release during forced-death
// cascades.
type Pool[T any] struct {
	free    []*T
	in      map[*T]struct{}
	newFn   func() *T
	created int
}

// NewPool builds a pool and pre-warms it with prewarm instances.
func NewPool[T any](prewarm int, newFn func() *T) *Pool[T] {
	p := &Pool[T]{
		free:  make([]*T, 0, prewarm),
		in:    make(map[*T]struct{}, prewarm),
		newFn: newFn,
	}
	for i := 0; i < prewarm; i++ {
		v := newFn()
		p.created++
		p.free = append(p.free, v)
		p.in[v] = struct{}{}
	}
	return p
}

// Get pops a pooled instance, creating a fresh one when the pool is empty.
func (p *Pool[T]) Get() *T {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		p.free = p.free[:n-1]
		delete(p.in, v)
		return v
	}
	p.created++
	return p.newFn()
}

// Put returns an instance to the pool. Returns false (and does nothing) if
// the instance is already pooled.
func (p *Pool[T]) Put(v *T) bool {
	if _, dup := p.in[v]; dup {
		return false
	}
	p.in[v] = struct{}{}
	p.free = append(p.free, v)
	return true
}

// FreeCount returns how many instances are currently pooled.
func (p *Pool[T]) FreeCount() int {
	return len(p.free)
}

// Created returns the total number of instances ever constructed.
func (p *Pool[T]) Created() int {
	return p.created
}
