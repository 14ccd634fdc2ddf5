package sim

// Registry tracks every currently-simulated enemy in a dense swap-remove
// array with a parallel cached-position array. Register/Unregister are O(1),
// queries are a single linear scan over cached positions (no per-entity
// position read during the scan). Accessed only from the simulation
// goroutine, so no locks.
type Registry struct {
	enemies   []*Enemy
	positions []Vec3
	count     int
}

// NewRegistry allocates backing storage for capacity enemies. Capacity is a
// hint; the arrays grow by doubling when exceeded.
func NewRegistry(capacity int) *Registry {
	if capacity < 8 {
		capacity = 8
	}
	return &Registry{
		enemies:   make([]*Enemy, capacity),
		positions: make([]Vec3, capacity),
	}
}

// Count returns the number of registered enemies.
func (r *Registry) Count() int {
	return r.count
}

// Register appends an enemy to the dense array and caches its position.
// Always succeeds: backing storage doubles when full.
func (r *Registry) Register(e *Enemy) int {
	if r.count == len(r.enemies) {
		grown := make([]*Enemy, len(r.enemies)*2)
		copy(grown, r.enemies)
		r.enemies = grown
		grownPos := make([]Vec3, len(r.positions)*2)
		copy(grownPos, r.positions)
		r.positions = grownPos
	}
	idx := r.count
	r.enemies[idx] = e
	r.positions[idx] = e.pos
	e.regIndex = idx
	r.count++
	return idx
}

// Unregister removes an enemy via swap-remove: the last live element moves
// into the freed slot and its stored index is repaired before returning.
// Stale or repeated calls are absorbed as no-ops: forced-death cascades
// (boss death killing minions) can legitimately unregister twice.
func (r *Registry) Unregister(e *Enemy) {
	idx := e.regIndex
	if idx < 0 || idx >= r.count || r.enemies[idx] != e {
		return
	}
	last := r.count - 1
	if idx != last {
		moved := r.enemies[last]
		r.enemies[idx] = moved
		r.positions[idx] = r.positions[last]
		moved.regIndex = idx
	}
	r.enemies[last] = nil
	r.count--
	e.regIndex = -1
}

// Tick advances every registered enemy with the shared target position, then
// re-caches each enemy's resulting position in the same pass. Iteration is in
// dense-array order, which is arbitrary relative to spawn order; consumers
// must not depend on it. Enemies registered mid-tick (boss minions) are
// picked up by the growing bound and ticked this frame.
func (r *Registry) Tick(dt float64, target Vec3) {
	for i := 0; i < r.count; i++ {
		e := r.enemies[i]
		e.Tick(dt, target)
		r.positions[i] = e.pos
	}
}

// QueryRadius appends to out every enemy whose cached position lies within
// radius of center. Dissolving corpses are included (visually still present);
// fully dead enemies are excluded regardless of position. Passing a reused
// slice avoids per-query allocation.
func (r *Registry) QueryRadius(center Vec3, radius float64, out []*Enemy) []*Enemy {
	rr := radius * radius
	for i := 0; i < r.count; i++ {
		e := r.enemies[i]
		if e.dead && !e.dissolving {
			continue
		}
		if r.positions[i].XZDistSq(center) <= rr {
			out = append(out, e)
		}
	}
	return out
}

// All appends every visible enemy (live or dissolving) to out. Same
// filtering semantics as QueryRadius, without the distance check.
func (r *Registry) All(out []*Enemy) []*Enemy {
	for i := 0; i < r.count; i++ {
		e := r.enemies[i]
		if e.dead && !e.dissolving {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Raw appends every registered enemy to out, including fully-dead ones that
// have finished dissolving but are not yet reclaimed. Used by the reclaim
// pass and the collapse scheduler.
func (r *Registry) Raw(out []*Enemy) []*Enemy {
	for i := 0; i < r.count; i++ {
		out = append(out, r.enemies[i])
	}
	return out
}
