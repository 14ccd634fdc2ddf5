package system

import (
	"time"

	coresys "github.com/moksha/sim/internal/core/system"
	"github.com/moksha/sim/internal/sim"
)

// ReclaimSystem sweeps fully-dead enemies (dissolve complete) back into the
// director's pools at the end of the tick.
type ReclaimSystem struct {
	reg      *sim.Registry
	director *sim.Director

	scratch []*sim.Enemy
}

func NewReclaimSystem(reg *sim.Registry, d *sim.Director) *ReclaimSystem {
	return &ReclaimSystem{reg: reg, director: d}
}

func (s *ReclaimSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *ReclaimSystem) Update(dt time.Duration) {
	s.scratch = s.reg.Raw(s.scratch[:0])
	for _, e := range s.scratch {
		if e.IsDead() && !e.IsDissolving() {
			s.director.Reclaim(e)
		}
	}
}
