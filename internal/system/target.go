package system

import (
	"time"

	coresys "github.com/moksha/sim/internal/core/system"
	"github.com/moksha/sim/internal/sim"
)

// TargetSystem drives the phantom target's random walk. Runs before
// spawning and behavior so both see this frame's position.
type TargetSystem struct {
	phantom *sim.Phantom
}

func NewTargetSystem(p *sim.Phantom) *TargetSystem {
	return &TargetSystem{phantom: p}
}

func (s *TargetSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TargetSystem) Update(dt time.Duration) {
	s.phantom.Tick(dt.Seconds())
}
