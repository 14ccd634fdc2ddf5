package system

import (
	"time"

	coresys "github.com/moksha/sim/internal/core/system"
	"github.com/moksha/sim/internal/sim"
)

// BehaviorSystem ticks every registered enemy's state machine against the
// shared target position. Registered after SpawnSystem so enemies spawned
// this frame act this frame.
type BehaviorSystem struct {
	reg    *sim.Registry
	target sim.Target
}

func NewBehaviorSystem(reg *sim.Registry, target sim.Target) *BehaviorSystem {
	return &BehaviorSystem{reg: reg, target: target}
}

func (s *BehaviorSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *BehaviorSystem) Update(dt time.Duration) {
	s.reg.Tick(dt.Seconds(), s.target.Position())
}
